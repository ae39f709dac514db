package dto

type NewConversationResponse struct {
	SessionId string `json:"session_id"`
}

type SwitchConversationResponse struct {
	SessionId string `json:"session_id"`
}

type ListSessionsResponse struct {
	Sessions []string `json:"sessions"`
}

type ConversationTurnResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ConversationHistoryResponse struct {
	History []ConversationTurnResponse `json:"history"`
}
