package csvutil_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dalemusser/makerhub/internal/app/system/csvutil"
)

func TestParseMissionsCSV_FullRow(t *testing.T) {
	input := strings.Join([]string{
		"Title,Description,Station,CoverImage,Difficulty,Duration,RealWorld_Title,RealWorld_Companies,Challenge_1_Title,Challenge_1_Desc,Outcome_1_Title,Technologies,Skills,Gallery",
		`Robot Arm,Build a robot arm,Robotics,https://img/arm.png,Advanced,4 weeks,Industrial Automation,"Fanuc;KUKA",Grip Control,Make the gripper hold an egg,Servo Basics,"Arduino;C++","soldering, cad",a.png;b.png`,
	}, "\n")

	result, err := csvutil.ParseMissionsCSV(strings.NewReader(input), csvutil.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseMissionsCSV failed: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	if len(result.Missions) != 1 {
		t.Fatalf("expected 1 mission, got %d", len(result.Missions))
	}

	m := result.Missions[0]
	if m.Title != "Robot Arm" || m.Station != "Robotics" {
		t.Errorf("unexpected mission: %+v", m)
	}
	if m.CoverImage != "https://img/arm.png" {
		t.Errorf("cover image: got %q", m.CoverImage)
	}
	if m.RealWorld.Title != "Industrial Automation" {
		t.Errorf("real world title: got %q", m.RealWorld.Title)
	}
	if !reflect.DeepEqual(m.RealWorld.Companies, []string{"Fanuc", "KUKA"}) {
		t.Errorf("companies: got %v", m.RealWorld.Companies)
	}
	if len(m.Challenges) != 1 || m.Challenges[0].Title != "Grip Control" {
		t.Errorf("challenges: got %+v", m.Challenges)
	}
	if len(m.Outcomes) != 1 || m.Outcomes[0].Title != "Servo Basics" {
		t.Errorf("outcomes: got %+v", m.Outcomes)
	}
	if !reflect.DeepEqual(m.Skills, []string{"soldering", "cad"}) {
		t.Errorf("skills: got %v", m.Skills)
	}
	if !reflect.DeepEqual(m.Gallery, []string{"a.png", "b.png"}) {
		t.Errorf("gallery: got %v", m.Gallery)
	}
}

func TestParseMissionsCSV_ImageAliases(t *testing.T) {
	input := "Title,Description,Station,ThumbnailUrl\nA,B,C,https://img/x.png\n"
	result, err := csvutil.ParseMissionsCSV(strings.NewReader(input), csvutil.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseMissionsCSV failed: %v", err)
	}
	if result.Missions[0].CoverImage != "https://img/x.png" {
		t.Errorf("expected ThumbnailUrl to feed CoverImage, got %q", result.Missions[0].CoverImage)
	}
}

func TestParseMissionsCSV_MissingRequiredColumns(t *testing.T) {
	input := "Title,Description\nA,B\n"
	result, err := csvutil.ParseMissionsCSV(strings.NewReader(input), csvutil.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseMissionsCSV failed: %v", err)
	}
	if !result.HasErrors() {
		t.Fatal("expected header error for missing Station column")
	}
	if !strings.Contains(result.Errors[0].Reason, "station") {
		t.Errorf("error should name the missing column: %q", result.Errors[0].Reason)
	}
}

func TestParseMissionsCSV_RowErrorsDoNotAbortFile(t *testing.T) {
	input := strings.Join([]string{
		"Title,Description,Station",
		"Good,Desc,Robotics",
		",Missing title,Robotics",
		"Also Good,Desc,Woodshop",
	}, "\n")

	result, err := csvutil.ParseMissionsCSV(strings.NewReader(input), csvutil.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseMissionsCSV failed: %v", err)
	}
	if len(result.Missions) != 2 {
		t.Errorf("expected 2 parsed missions, got %d", len(result.Missions))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(result.Errors))
	}
	if result.Errors[0].Line != 3 {
		t.Errorf("error line: got %d, want 3", result.Errors[0].Line)
	}
}

func TestParseMissionsCSV_RowLimit(t *testing.T) {
	input := "Title,Description,Station\nA,B,C\nD,E,F\n"
	_, err := csvutil.ParseMissionsCSV(strings.NewReader(input), csvutil.ParseOptions{MaxRows: 1})
	if err != csvutil.ErrTooManyRows {
		t.Errorf("expected ErrTooManyRows, got %v", err)
	}
}

func TestParseMissionsCSV_BOMAndEmptyFile(t *testing.T) {
	result, err := csvutil.ParseMissionsCSV(strings.NewReader(""), csvutil.ParseOptions{})
	if err != nil || result.HasErrors() || len(result.Missions) != 0 {
		t.Errorf("empty file should parse cleanly: %v %+v", err, result)
	}

	input := "\ufeffTitle,Description,Station\nA,B,C\n"
	result, err = csvutil.ParseMissionsCSV(strings.NewReader(input), csvutil.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseMissionsCSV failed: %v", err)
	}
	if result.HasErrors() || len(result.Missions) != 1 {
		t.Errorf("BOM header should be accepted: %+v", result)
	}
}

func TestParseShowcaseCSV(t *testing.T) {
	input := "Title,Description,Image,Gallery\nLED Cube,An 8x8 cube,x.png,\"a.png, b.png\"\n"
	result, err := csvutil.ParseShowcaseCSV(strings.NewReader(input), csvutil.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseShowcaseCSV failed: %v", err)
	}
	if len(result.Showcases) != 1 {
		t.Fatalf("expected 1 showcase, got %d", len(result.Showcases))
	}
	s := result.Showcases[0]
	if s.Title != "LED Cube" || s.CoverImage != "x.png" {
		t.Errorf("unexpected showcase: %+v", s)
	}
	if !reflect.DeepEqual(s.Gallery, []string{"a.png", "b.png"}) {
		t.Errorf("gallery: got %v", s.Gallery)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a;b;c", []string{"a", "b", "c"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a; b, c", []string{"a", "b", "c"}},
		{" ; , ", nil},
	}
	for _, tt := range tests {
		got := csvutil.SplitList(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
