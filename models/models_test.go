package models

import (
	"attendance/db"
	"image"
	"path/filepath"
	"testing"
)

func initTestDB(t *testing.T) {
	t.Helper()
	db.Init("", filepath.Join(t.TempDir(), "test.db"))
	Init()
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "jad", "jad"},
		{"spaces", " Ali Baba ", "Ali_Baba"},
		{"leading dot", ".hidden", "_hidden"},
		{"path traversal", "../etc", "_._etc"},
		{"keeps dash and underscore", "mei-ling_2", "mei-ling_2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.in); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindOrCreatePerson(t *testing.T) {
	initTestDB(t)

	first, err := FindOrCreatePerson(db.Instance, "Ali Baba")
	if err != nil {
		t.Fatal(err)
	}
	second, err := FindOrCreatePerson(db.Instance, "Ali Baba")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == 0 || first.ID != second.ID {
		t.Errorf("expected the same person, got IDs %d and %d", first.ID, second.ID)
	}
	if first.Name != "Ali_Baba" {
		t.Errorf("Name = %q, want Ali_Baba", first.Name)
	}
}

func TestCreateFace(t *testing.T) {
	initTestDB(t)

	first := Face{Path: "mei/1.jpg"}
	person, err := CreateFace("mei", &first)
	if err != nil {
		t.Fatal(err)
	}
	if person.ID == 0 || first.PersonID != person.ID || first.ID == 0 {
		t.Fatalf("CreateFace() = %+v, face %+v", person, first)
	}

	// Same primary key, the insert fails and the new person is rolled back
	duplicate := Face{ID: first.ID, Path: "jad/1.jpg"}
	if _, err := CreateFace("jad", &duplicate); err == nil {
		t.Fatal("CreateFace() with a duplicate ID should fail")
	}
	people, err := ListPeople()
	if err != nil {
		t.Fatal(err)
	}
	if len(people) != 1 || people[0].Name != "mei" || people[0].Faces != 1 {
		t.Errorf("people after failed CreateFace() = %+v", people)
	}
}

func TestListPeople(t *testing.T) {
	initTestDB(t)

	ali, _ := FindOrCreatePerson(db.Instance, "ali")
	_, _ = FindOrCreatePerson(db.Instance, "bob")
	for i := 0; i < 2; i++ {
		f := Face{PersonID: ali.ID, Path: "ali/x.jpg"}
		f.SetRectangle(image.Rect(1, 2, 3, 4))
		if err := db.Instance.Create(&f).Error; err != nil {
			t.Fatal(err)
		}
	}
	people, err := ListPeople()
	if err != nil {
		t.Fatal(err)
	}
	if len(people) != 2 {
		t.Fatalf("got %d people, want 2", len(people))
	}
	if people[0].Name != "ali" || people[0].Faces != 2 {
		t.Errorf("people[0] = %+v, want ali with 2 faces", people[0])
	}
	if people[1].Name != "bob" || people[1].Faces != 0 {
		t.Errorf("people[1] = %+v, want bob with 0 faces", people[1])
	}

	faces, err := AllFaces()
	if err != nil {
		t.Fatal(err)
	}
	if len(faces) != 2 || faces[0].Person.Name != "ali" {
		t.Errorf("AllFaces() = %+v", faces)
	}
	if faces[0].Rectangle() != image.Rect(1, 2, 3, 4) {
		t.Errorf("Rectangle() = %v", faces[0].Rectangle())
	}
}

func TestRecentAttendance(t *testing.T) {
	initTestDB(t)

	for _, r := range []string{"Unknown", "User: ali, IC: 900101-14-5678", "IC not detected"} {
		a := Attendance{Kind: KindIdentify, Result: r}
		if err := a.Create(); err != nil {
			t.Fatal(err)
		}
	}
	got, err := RecentAttendance(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Result != "IC not detected" {
		t.Errorf("latest record first expected, got %q", got[0].Result)
	}
	all, _ := RecentAttendance(0)
	if len(all) != 3 {
		t.Errorf("RecentAttendance(0) returned %d records, want 3", len(all))
	}
}
