package schema

// RewardLedgerTable represents the 'reward.ledger' table
type RewardLedgerTable struct {
	Table     string
	ID        string
	StudentID string
	AttemptID string
	Points    string
	Reason    string
	CreatedAt string
}

// RewardLedger is the schema definition for reward.ledger
var RewardLedger = RewardLedgerTable{
	Table:     "reward.ledger",
	ID:        "id",
	StudentID: "studentid",
	AttemptID: "attemptid",
	Points:    "points",
	Reason:    "reason",
	CreatedAt: "createdat",
}

func (t RewardLedgerTable) Columns() []string {
	return []string{
		t.ID, t.StudentID, t.AttemptID, t.Points, t.Reason, t.CreatedAt,
	}
}
