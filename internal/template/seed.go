package template

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTemplateID is the registry key used when a request omits the
// template name.
const DefaultTemplateID = "email_template"

type seedFile struct {
	Templates []seedEntry `yaml:"templates"`
}

type seedEntry struct {
	Name      string   `yaml:"name"`
	Body      string   `yaml:"body"`
	Variables []string `yaml:"variables"`
}

// LoadSeed reads template records from a YAML seed file. The file shape is:
//
//	templates:
//	  - name: Email Template
//	    body: "Subject: {subject}\n..."
//	    variables: [subject, ...]
//
// Records are not validated here; Registry.Upsert does that so a single bad
// entry cannot sink the whole batch.
func LoadSeed(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	records := make([]Record, 0, len(sf.Templates))
	for _, e := range sf.Templates {
		records = append(records, Record{
			ID:        DeriveID(e.Name),
			Name:      e.Name,
			Body:      e.Body,
			Variables: e.Variables,
		})
	}
	return records, nil
}

// BuiltinSeed returns the fixed seed set used when no seed file is
// configured.
func BuiltinSeed() []Record {
	return []Record{
		{
			ID:   "email_template",
			Name: "Email Template",
			Body: "Subject: {subject}\n\nDear {recipient},\n\n{body}\n\nBest regards,\n{sender}",
			Variables: []string{
				"subject", "recipient", "body", "sender",
			},
		},
		{
			ID:   "meeting_notes",
			Name: "Meeting Notes",
			Body: "Meeting: {title}\nDate: {date}\nAttendees: {attendees}\n\nAgenda:\n{agenda}\n\nAction Items:\n{action_items}",
			Variables: []string{
				"title", "date", "attendees", "agenda", "action_items",
			},
		},
		{
			ID:   "blog_post",
			Name: "Blog Post",
			Body: "# {title}\n\n{introduction}\n\n{content}\n\n## Conclusion\n\n{conclusion}",
			Variables: []string{
				"title", "introduction", "content", "conclusion",
			},
		},
	}
}
