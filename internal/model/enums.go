package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TagType classifies a Tag.
type TagType int

const (
	TagTypeCuisine TagType = iota
	TagTypeType
	TagTypeCustom
)

// WorkspaceNeeded is the counter space a recipe requires.
type WorkspaceNeeded int

const (
	WorkspaceSmall WorkspaceNeeded = iota
	WorkspaceMedium
	WorkspaceLarge
)

// TimeCategory is the total time commitment of a recipe.
type TimeCategory int

const (
	// TimeQuick is 30 minutes or less.
	TimeQuick TimeCategory = iota
	// TimeMedium is one to three hours.
	TimeMedium
	// TimeLong is more than three hours.
	TimeLong
	TimeOvernight
)

// Messiness is the cleanup effort a recipe leaves behind.
type Messiness int

const (
	MessinessLow Messiness = iota
	MessinessMedium
	MessinessHigh
)

var (
	tagTypeNames         = []string{"Cuisine", "Type", "Custom"}
	workspaceNeededNames = []string{"Small", "Medium", "Large"}
	timeCategoryNames    = []string{"Quick", "Medium", "Long", "Overnight"}
	messinessNames       = []string{"Low", "Medium", "High"}
)

// parseEnum accepts a case-insensitive name or the ordinal value.
func parseEnum(kind string, names []string, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(names) {
		return i, nil
	}
	return 0, fmt.Errorf("invalid %s %q: must be one of %s", kind, s, strings.Join(names, ", "))
}

func unmarshalEnum(kind string, names []string, data []byte) (int, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return parseEnum(kind, names, s)
	}
	var i int
	if err := json.Unmarshal(data, &i); err != nil || i < 0 || i >= len(names) {
		return 0, fmt.Errorf("invalid %s %s: must be one of %s", kind, data, strings.Join(names, ", "))
	}
	return i, nil
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return strconv.Itoa(i)
	}
	return names[i]
}

func scanEnum(kind string, names []string, src any) (int, error) {
	switch v := src.(type) {
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case []byte:
		return parseEnum(kind, names, string(v))
	case string:
		return parseEnum(kind, names, v)
	default:
		return 0, fmt.Errorf("cannot scan %T into %s", src, kind)
	}
}

func isNull(data []byte) bool {
	return string(data) == "null"
}

// ParseTagType parses a tag type name such as "Cuisine".
func ParseTagType(s string) (TagType, error) {
	i, err := parseEnum("tag type", tagTypeNames, s)
	return TagType(i), err
}

func (t TagType) String() string { return enumName(tagTypeNames, int(t)) }

func (t TagType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TagType) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	i, err := unmarshalEnum("tag type", tagTypeNames, data)
	if err != nil {
		return err
	}
	*t = TagType(i)
	return nil
}

func (t TagType) Value() (driver.Value, error) { return int64(t), nil }

func (t *TagType) Scan(src any) error {
	i, err := scanEnum("tag type", tagTypeNames, src)
	*t = TagType(i)
	return err
}

// ParseWorkspaceNeeded parses a workspace name such as "Small".
func ParseWorkspaceNeeded(s string) (WorkspaceNeeded, error) {
	i, err := parseEnum("workspace", workspaceNeededNames, s)
	return WorkspaceNeeded(i), err
}

func (w WorkspaceNeeded) String() string { return enumName(workspaceNeededNames, int(w)) }

func (w WorkspaceNeeded) MarshalJSON() ([]byte, error) { return json.Marshal(w.String()) }

func (w *WorkspaceNeeded) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	i, err := unmarshalEnum("workspace", workspaceNeededNames, data)
	if err != nil {
		return err
	}
	*w = WorkspaceNeeded(i)
	return nil
}

func (w WorkspaceNeeded) Value() (driver.Value, error) { return int64(w), nil }

func (w *WorkspaceNeeded) Scan(src any) error {
	i, err := scanEnum("workspace", workspaceNeededNames, src)
	*w = WorkspaceNeeded(i)
	return err
}

// ParseTimeCategory parses a time category name such as "Quick".
func ParseTimeCategory(s string) (TimeCategory, error) {
	i, err := parseEnum("time category", timeCategoryNames, s)
	return TimeCategory(i), err
}

func (c TimeCategory) String() string { return enumName(timeCategoryNames, int(c)) }

func (c TimeCategory) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *TimeCategory) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	i, err := unmarshalEnum("time category", timeCategoryNames, data)
	if err != nil {
		return err
	}
	*c = TimeCategory(i)
	return nil
}

func (c TimeCategory) Value() (driver.Value, error) { return int64(c), nil }

func (c *TimeCategory) Scan(src any) error {
	i, err := scanEnum("time category", timeCategoryNames, src)
	*c = TimeCategory(i)
	return err
}

// ParseMessiness parses a messiness name such as "Low".
func ParseMessiness(s string) (Messiness, error) {
	i, err := parseEnum("messiness", messinessNames, s)
	return Messiness(i), err
}

func (m Messiness) String() string { return enumName(messinessNames, int(m)) }

func (m Messiness) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *Messiness) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	i, err := unmarshalEnum("messiness", messinessNames, data)
	if err != nil {
		return err
	}
	*m = Messiness(i)
	return nil
}

func (m Messiness) Value() (driver.Value, error) { return int64(m), nil }

func (m *Messiness) Scan(src any) error {
	i, err := scanEnum("messiness", messinessNames, src)
	*m = Messiness(i)
	return err
}
