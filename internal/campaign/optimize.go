package campaign

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MicroGoal is the next fundraising milestone shown to donors
type MicroGoal struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

// CTA is the donate button copy and its color keyword
type CTA struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Optimization is the progress-dependent content for a campaign page
type Optimization struct {
	MicroGoal MicroGoal `json:"micro_goal"`
	CTA       CTA       `json:"dynamic_cta"`
}

var printer = message.NewPrinter(language.English)

// Optimize derives the micro-goal and CTA from the campaign's progress.
// It is a pure function of TotalGoal and CurrentRaised.
func Optimize(c Campaign) Optimization {
	pct := c.Progress() * 100

	return Optimization{
		MicroGoal: microGoal(c.TotalGoal, pct),
		CTA:       dynamicCTA(pct),
	}
}

func microGoal(goal, pct float64) MicroGoal {
	switch {
	case pct < 25:
		amount := milestone(goal, 0.25)
		return MicroGoal{Amount: amount, Message: printer.Sprintf("Help us reach our first milestone of $%d!", int64(amount))}
	case pct < 50:
		amount := milestone(goal, 0.5)
		return MicroGoal{Amount: amount, Message: printer.Sprintf("We're making great progress! Next stop: $%d", int64(amount))}
	case pct < 75:
		amount := milestone(goal, 0.75)
		return MicroGoal{Amount: amount, Message: printer.Sprintf("Over halfway there! Let's reach $%d", int64(amount))}
	case pct < 90:
		amount := milestone(goal, 0.9)
		return MicroGoal{Amount: amount, Message: printer.Sprintf("Almost there! Help us get to $%d", int64(amount))}
	default:
		return MicroGoal{Amount: goal, Message: printer.Sprintf("Final push! Help us reach our goal of $%d", int64(math.Round(goal)))}
	}
}

// milestone rounds the band fraction of goal up to the next thousand
func milestone(goal, fraction float64) float64 {
	return math.Ceil(goal*fraction/1000) * 1000
}

func dynamicCTA(pct float64) CTA {
	switch {
	case pct >= 90:
		return CTA{Text: "🔥 Final Push! Donate Now", Color: "red"}
	case pct >= 75:
		return CTA{Text: "⚡ Almost There! Contribute", Color: "orange"}
	case pct >= 50:
		return CTA{Text: "🎯 Keep It Going! Donate", Color: "green"}
	default:
		return CTA{Text: "🚀 Support Our Mission", Color: "blue"}
	}
}
