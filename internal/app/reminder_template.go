package app

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"birthday_tracker/internal/domain/birthday"
)

var reminderEmailTmpl = template.Must(template.New("reminder").Funcs(template.FuncMap{
	"plural": plural,
}).Parse(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
  <div style="background:linear-gradient(135deg,#c94545 0%,#8b1e1e 100%);padding:30px;text-align:center;color:white;border-radius:12px 12px 0 0;">
    <h1 style="margin:0;font-size:1.8em;">🎂 {{.Organization}}</h1>
    <p style="margin:8px 0 4px;font-size:1em;">Birthday Reminder — {{.Label}}</p>
  </div>
  <div style="padding:30px;background:#f8f9fa;">
    <p style="font-size:16px;color:#333;">Hello,</p>
    <p style="font-size:16px;color:#333;">
      {{if gt (len .Items) 1}}The following people have birthdays{{else}}The following person has a birthday{{end}} coming up <strong>{{.Label}}</strong>:
    </p>
    <div style="background:white;border-radius:10px;margin:20px 0;overflow:hidden;">
    {{- range .Items}}
      <div style="padding:15px;border-bottom:1px solid #e0e0e0;">
        <strong style="font-size:17px;color:#1a1a2e;">{{.Name}}</strong>
        <div style="color:#666;margin-top:4px;">{{.Date}} — in {{.DaysUntil}} {{plural .DaysUntil "day" "days"}}</div>
      </div>
    {{- end}}
    </div>
    <p style="font-size:16px;color:#333;">Don't forget to prepare and post their birthday {{plural (len .Items) "celebration" "celebrations"}}!</p>
    <p style="font-size:16px;color:#333;margin-top:30px;">Best wishes,<br><strong>{{.Organization}} Birthday Tracker</strong></p>
  </div>
  <div style="padding:15px;text-align:center;color:#999;font-size:13px;background:white;border-radius:0 0 12px 12px;">
    This is an automatic reminder from the {{.Organization}} Birthday Tracker.
  </div>
</div>`))

type reminderItem struct {
	Name      string
	Date      string
	DaysUntil int
}

type reminderView struct {
	Organization string
	Label        string
	Items        []reminderItem
}

// BucketLabel names a lead-time bucket the way the reminder subject reads it.
func BucketLabel(days int) string {
	switch days {
	case 0:
		return "TODAY"
	case 1:
		return "TOMORROW"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// RenderReminder renders the subject and HTML body of one reminder bucket.
func RenderReminder(organization, label string, due []birthday.Record, reference time.Time) (subject, body string, err error) {
	view := reminderView{
		Organization: organization,
		Label:        label,
		Items:        reminderItems(due, reference),
	}

	var buf bytes.Buffer
	if err := reminderEmailTmpl.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("failed to render reminder email: %w", err)
	}

	subject = fmt.Sprintf("🎂 %s: %d %s %s!", organization, len(due), plural(len(due), "birthday", "birthdays"), label)
	return subject, buf.String(), nil
}

// RenderReminderText is the plain-text form used for chat mirrors.
func RenderReminderText(label string, due []birthday.Record, reference time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎂 %d %s %s:\n", len(due), plural(len(due), "birthday", "birthdays"), label)
	for _, item := range reminderItems(due, reference) {
		fmt.Fprintf(&b, "• %s (%s)\n", item.Name, item.Date)
	}
	return b.String()
}

func reminderItems(due []birthday.Record, reference time.Time) []reminderItem {
	items := make([]reminderItem, 0, len(due))
	for _, r := range due {
		item := reminderItem{Name: r.Name, Date: r.Birthday}
		if annual, err := r.AnnualDate(); err == nil {
			item.Date = annual.Format("January 2")
			item.DaysUntil = birthday.DaysUntilNextOccurrence(reference, annual)
		}
		items = append(items, item)
	}
	return items
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
