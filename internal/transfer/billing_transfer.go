package transfer

type WalletTopUp struct {
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Reference string `json:"reference"`
}

type TicketCreation struct {
	Subject  string `json:"subject" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high"`
}

type MessageCreation struct {
	Body string `json:"body" validate:"required"`
}

type AgentAssignment struct {
	AgentID int64 `json:"agent_id" validate:"required"`
}
