package bd

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/joshharrison/beadpert/internal/pert"
)

// Issue is a beads issue as reported by bd list --json.
type Issue struct {
	ID        string
	Title     string
	Status    string
	Priority  int
	Type      string
	Labels    []string
	DependsOn []string

	depsKnown bool // the JSON carried a dependencies field
}

var errNotArray = errors.New("expected a JSON array")

// parseIssues decodes bd list output. Dependencies come either as plain ids
// or as objects with depends_on_id and a type; only blocking types count.
func parseIssues(data []byte) ([]Issue, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if root.Type == gjson.Null {
		return nil, nil
	}
	if !root.IsArray() {
		return nil, errNotArray
	}

	var issues []Issue
	root.ForEach(func(_, v gjson.Result) bool {
		id := v.Get("id").String()
		if id == "" {
			return true
		}
		is := Issue{
			ID:       id,
			Title:    v.Get("title").String(),
			Status:   v.Get("status").String(),
			Priority: int(v.Get("priority").Int()),
			Type:     v.Get("issue_type").String(),
		}
		for _, l := range v.Get("labels").Array() {
			is.Labels = append(is.Labels, l.String())
		}
		if deps := v.Get("dependencies"); deps.Exists() && deps.IsArray() {
			is.depsKnown = true
			is.DependsOn = dependencyIDs(deps)
		}
		issues = append(issues, is)
		return true
	})
	return issues, nil
}

func dependencyIDs(deps gjson.Result) []string {
	var ids []string
	deps.ForEach(func(_, d gjson.Result) bool {
		switch {
		case d.Type == gjson.String:
			ids = append(ids, d.String())
		case d.IsObject():
			typ := d.Get("type").String()
			if typ == "" {
				typ = d.Get("dependency_type").String()
			}
			if typ != "" && typ != "blocks" {
				return true
			}
			id := d.Get("depends_on_id").String()
			if id == "" {
				id = d.Get("id").String()
			}
			if id != "" {
				ids = append(ids, id)
			}
		}
		return true
	})
	return ids
}

// parseDepList decodes bd dep list --json, an array of issues.
func parseDepList(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if root.Type == gjson.Null {
		return nil, nil
	}
	if !root.IsArray() {
		return nil, errNotArray
	}
	var ids []string
	for _, v := range root.Get("#.id").Array() {
		if id := v.String(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ToItems converts issues into analysis input.
func ToItems(issues []Issue) []pert.Item {
	items := make([]pert.Item, len(issues))
	for i, is := range issues {
		items[i] = pert.Item{
			ID:        is.ID,
			Title:     is.Title,
			Status:    pert.ParseStatus(is.Status),
			DependsOn: is.DependsOn,
		}
	}
	return items
}
