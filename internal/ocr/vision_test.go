package ocr

import (
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"bare object", `{"detections":[]}`, false},
		{"fenced object", "```json\n{\"detections\":[]}\n```", false},
		{"surrounded by prose", "Here you go: {\"detections\":[]} done.", false},
		{"empty", "", true},
		{"no json", "sorry, I cannot read this image", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := extractJSON(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractJSON failed: %v", err)
			}
			if !strings.Contains(string(raw), "detections") {
				t.Errorf("unexpected extraction: %s", raw)
			}
		})
	}
}

func TestVision_ParseResponse(t *testing.T) {
	schema, err := compileVisionSchema()
	if err != nil {
		t.Fatalf("schema compile failed: %v", err)
	}
	v := &Vision{schema: schema}

	t.Run("valid response", func(t *testing.T) {
		content := `{"width": 1200, "height": 800, "detections": [
			{"text": "NINA ARONOVA", "confidence": 0.92,
			 "box": [[10,100],[160,100],[160,120],[10,120]]},
			{"text": "M", "confidence": 0.81,
			 "box": [[200,100],[212,100],[212,120],[200,120]]}
		]}`

		page, err := v.parseResponse(content)
		if err != nil {
			t.Fatalf("parseResponse failed: %v", err)
		}
		if page.Width != 1200 || page.Height != 800 {
			t.Errorf("unexpected dimensions: %dx%d", page.Width, page.Height)
		}
		if len(page.Detections) != 2 {
			t.Fatalf("expected 2 detections, got %d", len(page.Detections))
		}
		d := page.Detections[0]
		if d.Text != "NINA ARONOVA" || d.Confidence != 0.92 {
			t.Errorf("unexpected detection: %+v", d)
		}
		if d.Box[2].X != 160 || d.Box[2].Y != 120 {
			t.Errorf("unexpected box corner: %+v", d.Box[2])
		}
	})

	t.Run("wrong box arity rejected", func(t *testing.T) {
		content := `{"detections": [
			{"text": "M", "confidence": 0.8, "box": [[1,2],[3,4]]}
		]}`
		if _, err := v.parseResponse(content); err == nil {
			t.Error("expected schema rejection for 2-point box")
		}
	})

	t.Run("confidence out of range rejected", func(t *testing.T) {
		content := `{"detections": [
			{"text": "M", "confidence": 1.7,
			 "box": [[1,2],[3,2],[3,4],[1,4]]}
		]}`
		if _, err := v.parseResponse(content); err == nil {
			t.Error("expected schema rejection for confidence > 1")
		}
	})

	t.Run("missing detections rejected", func(t *testing.T) {
		if _, err := v.parseResponse(`{"width": 10}`); err == nil {
			t.Error("expected schema rejection for missing detections")
		}
	})
}
