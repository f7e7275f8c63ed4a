package internal

type Scoreboard struct {
	Events []Event `json:"events"`
}

type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	Date        string       `json:"date"`
	Status      *Status      `json:"status"`
	Competitors []Competitor `json:"competitors"`
}

type Status struct {
	Type struct {
		Completed bool   `json:"completed"`
		Name      string `json:"name"`
	} `json:"type"`
}

type Competitor struct {
	HomeAway string `json:"homeAway"`
	Winner   bool   `json:"winner"`
	Team     struct {
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}
