package webview2

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wippyai/webview2/errors"
)

// Bounds is a controller rectangle in parent-window coordinates.
type Bounds struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Settings are the per-webview feature switches. All start enabled.
type Settings struct {
	IsScriptEnabled                bool
	IsWebMessageEnabled            bool
	AreDefaultScriptDialogsEnabled bool
	IsStatusBarEnabled             bool
	AreDevToolsEnabled             bool
	AreDefaultContextMenusEnabled  bool
	IsZoomControlEnabled           bool
	IsBuiltInErrorPageEnabled      bool
}

// settingSlots pairs each field of Settings with its getter slot. The setter
// follows the getter.
func (s *Settings) settingSlots() []struct {
	slot  int
	value *bool
} {
	return []struct {
		slot  int
		value *bool
	}{
		{SettingsIsScriptEnabled, &s.IsScriptEnabled},
		{SettingsIsWebMessageEnabled, &s.IsWebMessageEnabled},
		{SettingsAreDefaultScriptDialogsEnabled, &s.AreDefaultScriptDialogsEnabled},
		{SettingsIsStatusBarEnabled, &s.IsStatusBarEnabled},
		{SettingsAreDevToolsEnabled, &s.AreDevToolsEnabled},
		{SettingsAreDefaultContextMenusEnabled, &s.AreDefaultContextMenusEnabled},
		{SettingsIsZoomControlEnabled, &s.IsZoomControlEnabled},
		{SettingsIsBuiltInErrorPageEnabled, &s.IsBuiltInErrorPageEnabled},
	}
}

// NavigationResult is extracted from a NavigationCompleted event.
type NavigationResult struct {
	NavigationID   uint64
	WebErrorStatus int32
	IsSuccess      bool
}

// Web error statuses reported by failed navigations.
const (
	WebErrorStatusUnknown             int32 = 0
	WebErrorStatusServerUnreachable   int32 = 6
	WebErrorStatusTimeout             int32 = 7
	WebErrorStatusConnectionAborted   int32 = 9
	WebErrorStatusDisconnected        int32 = 11
	WebErrorStatusCannotConnect       int32 = 12
	WebErrorStatusHostNameNotResolved int32 = 13
	WebErrorStatusOperationCanceled   int32 = 14
	WebErrorStatusUnexpectedError     int32 = 16
)

// WebMessage is a message posted by page script.
type WebMessage struct {
	Source string
	JSON   string
}

// Get returns the value at a gjson path of the message body.
func (m WebMessage) Get(path string) gjson.Result {
	return gjson.Get(m.JSON, path)
}

// String returns the message as a string when it was posted as one, and the
// raw JSON otherwise.
func (m WebMessage) String() string {
	r := gjson.Parse(m.JSON)
	if r.Type == gjson.String {
		return r.String()
	}
	return m.JSON
}

// NewJSONMessage builds a JSON object from alternating path/value pairs, for
// PostWebMessageAsJSON.
func NewJSONMessage(kv ...any) (string, error) {
	if len(kv)%2 != 0 {
		return "", errors.InvalidInput(errors.PhaseConvert, "odd number of message arguments")
	}
	out := "{}"
	for i := 0; i < len(kv); i += 2 {
		path, ok := kv[i].(string)
		if !ok {
			return "", errors.InvalidInput(errors.PhaseConvert, "message path must be a string")
		}
		var err error
		out, err = sjson.Set(out, path, kv[i+1])
		if err != nil {
			return "", err
		}
	}
	return out, nil
}
