package v1

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCreateWebhookRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateWebhookRequest
		wantErr bool
	}{
		{
			name: "minimal valid request",
			req:  CreateWebhookRequest{Name: "grades", TargetURL: "https://hooks.example.edu/caliper"},
		},
		{
			name:    "missing target url",
			req:     CreateWebhookRequest{Name: "grades"},
			wantErr: true,
		},
		{
			name:    "missing name",
			req:     CreateWebhookRequest{TargetURL: "https://hooks.example.edu/caliper"},
			wantErr: true,
		},
		{
			name:    "name too long",
			req:     CreateWebhookRequest{Name: strings.Repeat("n", MaxWebhookNameLength+1), TargetURL: "https://hooks.example.edu/caliper"},
			wantErr: true,
		},
		{
			name:    "relative target url",
			req:     CreateWebhookRequest{Name: "grades", TargetURL: "/caliper"},
			wantErr: true,
		},
		{
			name:    "non http scheme",
			req:     CreateWebhookRequest{Name: "grades", TargetURL: "ftp://hooks.example.edu/"},
			wantErr: true,
		},
		{
			name: "empty event type list",
			req: CreateWebhookRequest{
				Name:      "grades",
				TargetURL: "https://hooks.example.edu/caliper",
				Filters:   &Filters{EventTypes: []string{}},
			},
			wantErr: true,
		},
		{
			name: "filters with event types",
			req: CreateWebhookRequest{
				Name:      "grades",
				TargetURL: "https://hooks.example.edu/caliper",
				Filters:   &Filters{EventTypes: []string{"ViewEvent"}, ActorID: "https://example.edu/users/1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateWebhookRequest_ApplyIsPartial(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hook := Webhook{
		WebhookID: "wh-1",
		SensorID:  "sensor-1",
		Name:      "grades",
		TargetURL: "https://hooks.example.edu/a",
		Active:    true,
		Headers:   map[string]string{"X-Team": "lms"},
		CreatedAt: created,
		UpdatedAt: created,
	}

	var req UpdateWebhookRequest
	if err := json.Unmarshal([]byte(`{"active": false}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	now := created.Add(time.Hour)
	req.Apply(&hook, now)

	if hook.Active {
		t.Errorf("Active should be false after update")
	}
	if hook.Name != "grades" || hook.TargetURL != "https://hooks.example.edu/a" {
		t.Errorf("unsupplied fields changed: %+v", hook)
	}
	if hook.Headers["X-Team"] != "lms" {
		t.Errorf("headers should be preserved, got %v", hook.Headers)
	}
	if !hook.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", hook.UpdatedAt, now)
	}
	if !hook.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt must not change")
	}
}

func TestWebhook_RedactedDropsSecret(t *testing.T) {
	hook := Webhook{WebhookID: "wh-1", Secret: "abc"}
	body, err := json.Marshal(hook.Redacted())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := out["secret"]; ok {
		t.Errorf("secret should be omitted, got %s", body)
	}
	if hook.Secret != "abc" {
		t.Errorf("Redacted must not mutate the receiver")
	}
}

func TestEnvelope_Single(t *testing.T) {
	env := &Envelope{
		Sensor:      "https://example.edu/sensors/1",
		SendTime:    "2024-01-01T00:00:00Z",
		DataVersion: DataVersion,
		Data:        []json.RawMessage{json.RawMessage(`{"id":"a"}`), json.RawMessage(`{"id":"b"}`)},
	}

	single := env.Single(env.Data[1], "2024-01-01T00:00:05Z")
	if single.Sensor != env.Sensor || single.DataVersion != DataVersion {
		t.Errorf("metadata not copied: %+v", single)
	}
	if single.SendTime != "2024-01-01T00:00:05Z" {
		t.Errorf("SendTime = %q", single.SendTime)
	}
	if len(single.Data) != 1 || string(single.Data[0]) != `{"id":"b"}` {
		t.Errorf("Data = %s", single.Data)
	}
}
