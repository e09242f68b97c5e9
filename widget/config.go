// Package widget describes the conversational-agent widgets embedded on the
// support pages and loads their shared bootstrap script exactly once.
// File: widget/config.go
package widget

// bootstrap script shared by every agent widget
const (
	ScriptID  = "dialogflow-bootstrap-script"
	ScriptURL = "https://www.gstatic.com/dialogflow-console/fast/messenger/bootstrap.js?v=1"
)

// Dimensions is the chat window size as CSS lengths.
type Dimensions struct {
	Width  string
	Height string
}

var defaultDimensions = Dimensions{Width: "360px", Height: "500px"}

// Config is everything a support page needs to mount one agent widget.
type Config struct {
	Slug         string
	PageTitle    string
	PageSubtitle string
	Topics       []string
	AgentID      string
	ChatTitle    string
	ChatSubtitle string
	Dimensions   Dimensions
	LanguageCode string
}

// Path is the page route.
func (c Config) Path() string {
	return "/" + c.Slug
}

var pages = []Config{
	{
		Slug:         "mental-health",
		PageTitle:    "Mental Health Support",
		PageSubtitle: "Your Safe Space to Talk and Reflect",
		Topics: []string{
			"Managing stress from exams, assignments, or social pressures.",
			"Coping with feelings of anxiety, sadness, or loneliness.",
			"Finding healthy ways to deal with difficult emotions.",
			"Getting tips for mindfulness and relaxation.",
			"Understanding when and how to seek further help.",
		},
		AgentID:      "f1d56207-6f14-457c-b432-416d9a804919",
		ChatTitle:    "Mental",
		ChatSubtitle: "Here to support you",
		Dimensions:   defaultDimensions,
	},
	{
		Slug:         "homework-help",
		PageTitle:    "Homework Helper Bot",
		PageSubtitle: "Ask Your Questions Directly!",
		Topics: []string{
			"Type your question in full (avoid just keywords).",
			"Ask concept-based or theory questions.",
			"The bot currently supports Physics, Chemistry, and English topics.",
		},
		AgentID:    "20dce2b7-dfcf-491e-bee9-5d19f6c8837f",
		ChatTitle:  "Homework",
		Dimensions: defaultDimensions,
	},
	{
		Slug:         "bullying-help",
		PageTitle:    "Bullying Support",
		PageSubtitle: "A Safe Place to Report and Get Help",
		Topics: []string{
			"Talk about what's happening without fear of judgment.",
			"Understand what constitutes bullying and its impact.",
			"Learn about strategies to cope with the situation.",
			"Find out about the steps you can take to get help from the school.",
		},
		AgentID:    "b6bf9ff2-a493-42c1-a77d-afe9964eb2ae",
		ChatTitle:  "Bullying Help",
		Dimensions: defaultDimensions,
	},
	{
		Slug:         "activities",
		PageTitle:    "Activities Assistant",
		PageSubtitle: "Your Guide to School Events",
		Topics: []string{
			"Find out what events are coming up.",
			"Register for an event in a few messages.",
		},
		AgentID:    "75e34229-81d6-48dc-a566-837752d63132",
		ChatTitle:  "Event",
		Dimensions: defaultDimensions,
	},
	{
		Slug:         "report-an-issue",
		PageTitle:    "Report an Issue",
		PageSubtitle: "Speak up safely and confidently. If you're facing or witnessing something wrong, we're here to help.",
		Topics: []string{
			"Bullying or harassment incidents.",
			"Mental health struggles you or a friend are facing.",
			"Other school-related issues or safety concerns.",
		},
		AgentID:    "8163a933-1cfe-4abd-9924-54926c2902e5",
		ChatTitle:  "Report Help",
		Dimensions: defaultDimensions,
	},
}

// Pages returns every support page in navigation order.
func Pages() []Config {
	out := make([]Config, len(pages))
	for i, p := range pages {
		out[i] = p.withDefaults()
	}
	return out
}

// Lookup finds a support page by slug.
func Lookup(slug string) (Config, bool) {
	for _, p := range pages {
		if p.Slug == slug {
			return p.withDefaults(), true
		}
	}
	return Config{}, false
}

func (c Config) withDefaults() Config {
	if c.LanguageCode == "" {
		c.LanguageCode = "en"
	}
	if c.Dimensions == (Dimensions{}) {
		c.Dimensions = defaultDimensions
	}
	c.Topics = append([]string(nil), c.Topics...)
	return c
}
