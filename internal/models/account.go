package models

// AccountSchemaVersion is the version of the persisted account document.
const AccountSchemaVersion = 2

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Account carries plan state written by the billing side.
type Account struct {
	Version int    `json:"version"`
	Handle  string `json:"handle"`
	Plan    Plan   `json:"plan"`
}

func (a Account) IsPro() bool { return a.Plan == PlanPro }

func (p Plan) Valid() bool { return p == PlanFree || p == PlanPro }
