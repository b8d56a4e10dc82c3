// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payload

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	m := Message{
		Recipients: []string{"a@x.com", "b@x.com"},
		Subject:    "Hi",
		Body:       "Hello",
		ID:         "u1",
	}

	got := Encode(m)
	want := "mList: a@x.com; b@x.com --- subj: Hi --- msg: Hello --- uuid: u1"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestDecode_Scenario(t *testing.T) {
	m, err := Decode("mList: a@x.com; b@x.com --- subj: Hi --- msg: Hello --- uuid: u1")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !reflect.DeepEqual(m.Recipients, []string{"a@x.com", "b@x.com"}) {
		t.Errorf("Recipients = %q", m.Recipients)
	}
	if m.Subject != "Hi" {
		t.Errorf("Subject = %q, want Hi", m.Subject)
	}
	if m.Body != "Hello\n\n\nDO NOT ANSWER THIS MESSAGE." {
		t.Errorf("Body = %q", m.Body)
	}
	if m.ID != "u1" {
		t.Errorf("ID = %q, want u1", m.ID)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"single recipient", Message{Recipients: []string{"a@x.com"}, Subject: "S", Body: "B", ID: "id-1"}},
		{"many recipients", Message{Recipients: []string{"a@x.com", "b@y.org", "c@z.net"}, Subject: "Lab door", Body: "Room 4 was opened", ID: "id-2"}},
		{"multiline body", Message{Recipients: []string{"ops@x.com"}, Subject: "Alert", Body: "line one\nline two", ID: "id-3"}},
		{"unicode", Message{Recipients: []string{"josé@x.com"}, Subject: "¡Hola!", Body: "café ☕", ID: "id-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.msg))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got.Recipients, tt.msg.Recipients) {
				t.Errorf("Recipients = %q, want %q", got.Recipients, tt.msg.Recipients)
			}
			if got.Subject != tt.msg.Subject {
				t.Errorf("Subject = %q, want %q", got.Subject, tt.msg.Subject)
			}
			if StripSuffix(got.Body) != tt.msg.Body {
				t.Errorf("Body = %q, want %q", StripSuffix(got.Body), tt.msg.Body)
			}
			if got.ID != tt.msg.ID {
				t.Errorf("ID = %q, want %q", got.ID, tt.msg.ID)
			}
		})
	}
}

func TestDecode_SuffixAlwaysAppended(t *testing.T) {
	m, err := Decode("mList: a@x.com --- subj: S --- msg:  --- uuid: x")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if m.Body != MessageSuffix {
		t.Errorf("Body = %q, want just the suffix", m.Body)
	}
}

func TestDecode_Permissive(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantRecipients []string
		wantSubject    string
		wantBody       string
		wantID         string
	}{
		{
			name:           "empty string",
			raw:            "",
			wantRecipients: []string{""},
			wantSubject:    DefaultSubject,
			wantBody:       MessageSuffix,
			wantID:         "",
		},
		{
			name:           "only email list",
			raw:            "mList: a@x.com",
			wantRecipients: []string{"a@x.com"},
			wantSubject:    DefaultSubject,
			wantBody:       MessageSuffix,
			wantID:         "mList: a@x.com",
		},
		{
			name:           "empty subject uses default",
			raw:            "mList: a@x.com --- subj:  --- msg: hi --- uuid: k",
			wantRecipients: []string{"a@x.com"},
			wantSubject:    DefaultSubject,
			wantBody:       "hi" + MessageSuffix,
			wantID:         "k",
		},
		{
			name:           "no id header falls back to raw",
			raw:            "mList: a@x.com --- subj: S --- msg: M",
			wantRecipients: []string{"a@x.com"},
			wantSubject:    "S",
			wantBody:       "M" + MessageSuffix,
			wantID:         "mList: a@x.com --- subj: S --- msg: M",
		},
		{
			name:           "empty id falls back to raw",
			raw:            "mList: a@x.com --- subj: S --- msg: M --- uuid: ",
			wantRecipients: []string{"a@x.com"},
			wantSubject:    "S",
			wantBody:       "M" + MessageSuffix,
			wantID:         "mList: a@x.com --- subj: S --- msg: M --- uuid: ",
		},
		{
			name:           "id header inside a short payload",
			raw:            "mList: a@x.com --- uuid: k",
			wantRecipients: []string{"a@x.com"},
			wantSubject:    "uuid: k",
			wantBody:       MessageSuffix,
			wantID:         "mList: a@x.com --- uuid: k",
		},
		{
			name:           "free text",
			raw:            "https://example.com",
			wantRecipients: []string{"https://example.com"},
			wantSubject:    DefaultSubject,
			wantBody:       MessageSuffix,
			wantID:         "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(m.Recipients, tt.wantRecipients) {
				t.Errorf("Recipients = %q, want %q", m.Recipients, tt.wantRecipients)
			}
			if m.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", m.Subject, tt.wantSubject)
			}
			if m.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", m.Body, tt.wantBody)
			}
			if m.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", m.ID, tt.wantID)
			}
		})
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, err := Decode("mList: a@x.com --- subj: \xff\xfe")
	if err == nil {
		t.Fatal("Decode() expected error for invalid UTF-8")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestNew(t *testing.T) {
	m, err := New([]string{"a@x.com", "b@x.com"}, "Hi", "Hello")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(m.ID) != 36 || strings.Count(m.ID, "-") != 4 {
		t.Errorf("ID = %q, want UUID shape", m.ID)
	}

	other, _ := New([]string{"a@x.com"}, "Hi", "Hello")
	if m.ID == other.ID {
		t.Error("New() produced duplicate IDs")
	}
}

func TestNew_CopiesRecipients(t *testing.T) {
	list := []string{"a@x.com"}
	m, err := New(list, "", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	list[0] = "changed@x.com"
	if m.Recipients[0] != "a@x.com" {
		t.Errorf("Recipients aliased caller slice: %q", m.Recipients)
	}
}

func TestNew_NoRecipients(t *testing.T) {
	_, err := New(nil, "Hi", "Hello")
	if !errors.Is(err, ErrNoRecipients) {
		t.Errorf("New() error = %v, want ErrNoRecipients", err)
	}
}

func TestSummary(t *testing.T) {
	m := Message{Recipients: []string{"a@x.com", "b@x.com"}, Subject: "Hi", Body: "Hello"}
	want := "Generated qr contains the following information:\ne-mails: a@x.com, b@x.com\nsubject: Hi\nmessage: Hello"
	if got := m.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
