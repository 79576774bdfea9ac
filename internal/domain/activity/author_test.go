package activity_test

import (
	"reflect"
	"testing"

	"gitglimpse-core/internal/domain/activity"
)

func commit(login, name, email string) *activity.Commit {
	return &activity.Commit{Author: activity.CommitAuthor{Login: login, Name: name, Email: email}}
}

func TestMergeKey(t *testing.T) {
	tests := []struct {
		name string
		id   activity.RawIdentity
		want string
	}{
		{"login wins", activity.RawIdentity{Login: "Octocat", Name: "Mona", Email: "m@x.io"}, "login:octocat"},
		{"email when no login", activity.RawIdentity{Name: "Mona", Email: "M@X.io"}, "email:m@x.io"},
		{"normalized name", activity.RawIdentity{Name: "  Mona_Lisa-Octo  "}, "name:mona lisa octo"},
		{"nothing", activity.RawIdentity{}, ""},
		{"whitespace only", activity.RawIdentity{Login: " ", Name: "  ", Email: ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := activity.MergeKey(tt.id); got != tt.want {
				t.Errorf("MergeKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeAuthors_SameLoginDifferentCase(t *testing.T) {
	merged, names := activity.MergeAuthors([]*activity.Commit{
		commit("MonaLisa", "", ""),
		commit("monalisa", "Mona Lisa", "mona@example.com"),
	})

	if len(merged) != 1 {
		t.Fatalf("len(merged) = %v, want 1", len(merged))
	}
	identity := merged["login:monalisa"]
	if identity.Login != "MonaLisa" {
		t.Errorf("Login = %v, want MonaLisa", identity.Login)
	}
	if identity.Name != "Mona Lisa" {
		t.Errorf("Name = %v, want Mona Lisa", identity.Name)
	}
	if identity.Email != "mona@example.com" {
		t.Errorf("Email = %v, want mona@example.com", identity.Email)
	}
	if !reflect.DeepEqual(names, []string{"MonaLisa"}) {
		t.Errorf("names = %v, want [MonaLisa]", names)
	}
}

func TestMergeAuthors_FirstNonEmptyFieldWins(t *testing.T) {
	merged, _ := activity.MergeAuthors([]*activity.Commit{
		commit("", "First Name", "dev@example.com"),
		commit("", "Second Name", "DEV@example.com"),
	})

	identity, ok := merged["email:dev@example.com"]
	if !ok {
		t.Fatalf("merged = %v, want email key", merged)
	}
	if identity.Name != "First Name" {
		t.Errorf("Name = %v, want First Name", identity.Name)
	}
	if identity.Email != "dev@example.com" {
		t.Errorf("Email = %v, want dev@example.com", identity.Email)
	}
}

func TestMergeAuthors_DropsAnonymousRecords(t *testing.T) {
	merged, names := activity.MergeAuthors([]*activity.Commit{
		commit("", "", ""),
		commit("", "", ""),
	})

	if len(merged) != 0 {
		t.Errorf("len(merged) = %v, want 0", len(merged))
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}

func TestMergeAuthors_SortedDisplayNames(t *testing.T) {
	_, names := activity.MergeAuthors([]*activity.Commit{
		commit("zed", "", ""),
		commit("", "jane-doe", ""),
		commit("", "Jane_Doe", ""),
		commit("alice", "Alice A", ""),
		commit("", "", "bot@example.com"),
	})

	want := []string{"alice", "bot@example.com", "jane-doe", "zed"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestMergeAuthors_WorkItems(t *testing.T) {
	items := []*activity.WorkItem{
		{Number: 1, Author: "bob"},
		{Number: 2, Author: "alice"},
		{Number: 3, Author: "Bob"},
		{Number: 4},
	}

	_, names := activity.MergeAuthors(items)

	if !reflect.DeepEqual(names, []string{"alice", "bob"}) {
		t.Errorf("names = %v, want [alice bob]", names)
	}
}
