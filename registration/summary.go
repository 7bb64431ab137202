package registration

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/infotech-symposium/event-registration/events"
)

//go:embed templates
var templates embed.FS

var RegistrationFee = money.New(50000, money.INR)

var summaryTemplate = template.Must(template.New("registration-summary.tmpl").
	ParseFS(templates, "templates/registration-summary.tmpl"))

var whitespaceRun = regexp.MustCompile(`\s+`)

type summaryEvent struct {
	Marker string
	Name   string
	Topic  string
}

type summaryMember struct {
	Number int
	Name   string
}

// GenerateSummary renders the confirmation text for a registration. The
// output depends only on its arguments.
func GenerateSummary(reg Registration, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := summaryTemplate.Execute(&buf, map[string]any{
		"Registration": reg,
		"RegisteredOn": now.In(ist).Format("2/1/2006"),
		"Technical":    summaryEvents(reg, events.TECHNICAL),
		"NonTechnical": summaryEvents(reg, events.NON_TECHNICAL),
		"Members":      summaryMembers(reg),
		"Fee":          FormatFee(RegistrationFee),
		"Receipt":      receiptName(reg),
		"GeneratedAt":  now.In(ist).Format("2/1/2006, 3:04:05 pm"),
		"EventDate":    EventDate.Format("January 2, 2006"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute summary template: %w", err)
	}

	return buf.String(), nil
}

// SummaryFileName is the download name for a participant's summary.
func SummaryFileName(fullName string) string {
	return fmt.Sprintf("InfoTech_2026_Registration_%s.txt", whitespaceRun.ReplaceAllString(fullName, "_"))
}

// Events that are not in the catalogue are left out of both lists.
func summaryEvents(reg Registration, category events.Category) []summaryEvent {
	var result []summaryEvent
	for _, e := range events.ByCategory(category) {
		selected := reg.HasEvent(e.Name)
		line := summaryEvent{Marker: "[ ]", Name: e.Name}
		if selected {
			line.Marker = "[x]"
		}
		if selected && e.RequiresTopic {
			line.Topic = reg.PaperTopic
		}
		result = append(result, line)
	}
	return result
}

func summaryMembers(reg Registration) []summaryMember {
	members := make([]summaryMember, len(reg.TeamMembers))
	for i, name := range reg.TeamMembers {
		if name == "" {
			name = "None"
		}
		members[i] = summaryMember{Number: i + 2, Name: name}
	}
	return members
}

func receiptName(reg Registration) string {
	if reg.Receipt == nil {
		return "Not uploaded"
	}
	return reg.Receipt.Name
}

// FormatFee renders an amount without paise when they are zero.
func FormatFee(fee *money.Money) string {
	return strings.TrimSuffix(fee.Display(), ".00")
}
