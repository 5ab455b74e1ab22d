package dto

type TimeSlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SuggestionDTO struct {
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}
