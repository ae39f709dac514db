package dto

type SwitchModelRequest struct {
	Provider string `json:"provider" validate:"required"`
}

type SwitchModelResponse struct {
	Provider string `json:"provider"`
}

type SwitchProfileRequest struct {
	Profile string `json:"profile" validate:"required"`
}

type SwitchProfileResponse struct {
	Profile string `json:"profile"`
}
