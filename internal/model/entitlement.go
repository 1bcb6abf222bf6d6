package model

type FreeTrial struct {
	DeviceID  string
	UsesCount int
}

type GenerationToken struct {
	Token                string
	RemainingGenerations int
}

type TrialStatus struct {
	HasFreeTrial  bool
	UsesRemaining int
}

type TokenStatus struct {
	Valid                bool
	RemainingGenerations int
}
