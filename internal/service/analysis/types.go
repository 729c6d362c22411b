package analysis

type OrganizeRequest struct {
	Hand string `json:"hand"`
}

type GroupView struct {
	Kind  string   `json:"kind"`
	Cards []string `json:"cards"`
}

type OrganizationView struct {
	Groups    []GroupView `json:"groups"`
	Deadwood  int         `json:"deadwood"`
	MeldCount int         `json:"meldCount"`
	Text      string      `json:"text"`
}

type OrganizeReport struct {
	Hand          string             `json:"hand"`
	Organizations []OrganizationView `json:"organizations"`
	Best          OrganizationView   `json:"best"`
	Deadwood      int                `json:"deadwood"`
	MeldCount     int                `json:"meldCount"`
	Cached        bool               `json:"cached"`
}

// AdviseRequest describes what the agent can see. Threshold defaults to the
// knock value of TopDiscard, or 10 without one.
type AdviseRequest struct {
	Hand          string `json:"hand"`
	Discards      string `json:"discards"`
	OpponentKnown string `json:"opponentKnown"`
	TopDiscard    string `json:"topDiscard"`
	Threshold     *int   `json:"threshold"`
	Strategy      string `json:"strategy"`
}

type AdviceReport struct {
	Best        OrganizationView `json:"best"`
	Threshold   int              `json:"threshold"`
	GoOut       bool             `json:"goOut"`
	TakeDiscard *bool            `json:"takeDiscard,omitempty"`
	Throw       string           `json:"throw"`
	SafeThrow   string           `json:"safeThrow"`
	Recommended string           `json:"recommended"`
	Wildness    map[string]int   `json:"wildness"`
}
