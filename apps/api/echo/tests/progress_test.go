package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/user"
)

func completeBody(studentID, activityID string) []byte {
	return []byte(fmt.Sprintf(`{"student_id":%q,"activity_id":%q}`, studentID, activityID))
}

func Test_progressApi_complete(t *testing.T) {
	setup(t)

	parent := createUser(t, "Parent", "mopao", "mopao@test.cd", "", []string{user.RoleParent}, true)
	other := createUser(t, "Other", "othery", "other@test.cd", "", []string{user.RoleParent}, true)
	std := createStudent(t, parent.ID, "Zoe", 5)
	token := getToken(t, parent)

	tests := []httpTest{
		{name: "auth required", body: completeBody(std.ID, "counting_train"), wantCode: http.StatusUnauthorized},
		{name: "missing activity", token: token, body: []byte(fmt.Sprintf(`{"student_id":%q}`, std.ID)), wantCode: http.StatusBadRequest},
		{name: "unknown activity", token: token, body: completeBody(std.ID, "lol"), wantCode: http.StatusBadRequest},
		{name: "unowned profile", token: getToken(t, other), body: completeBody(std.ID, "counting_train"), wantCode: http.StatusNotFound},
		{name: "complete", token: token, body: completeBody(std.ID, "counting_train"), wantCode: http.StatusOK},
		{name: "repeat is a no-op", token: token, body: completeBody(std.ID, "counting_train"), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/progress/complete", tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var res progress.CompletionResult
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			switch tt.name {
			case "complete":
				if res.AlreadyCompleted {
					t.Error("first completion flagged as repeat")
				}
				if res.PointsAwarded != 10 {
					t.Errorf("PointsAwarded = %d; want 10", res.PointsAwarded)
				}
				if res.PointsBalance != 10 {
					t.Errorf("PointsBalance = %d; want 10", res.PointsBalance)
				}
				if res.Streak.Current != 1 {
					t.Errorf("Streak.Current = %d; want 1", res.Streak.Current)
				}
				if res.ModuleLevel.Module != "math" || res.ModuleLevel.Level != 1 {
					t.Errorf("ModuleLevel = %+v; want math level 1", res.ModuleLevel)
				}
			case "repeat is a no-op":
				if !res.AlreadyCompleted {
					t.Error("repeat completion not flagged")
				}
				if res.PointsAwarded != 0 {
					t.Errorf("PointsAwarded = %d; want 0", res.PointsAwarded)
				}
				if res.PointsBalance != 10 {
					t.Errorf("PointsBalance = %d; want 10 (unchanged)", res.PointsBalance)
				}
			}
		})
	}
}

func Test_progressApi_levelUnlock(t *testing.T) {
	setup(t)

	parent := createUser(t, "Parent", "mopao", "mopao@test.cd", "", []string{user.RoleParent}, true)
	std := createStudent(t, parent.ID, "Zoe", 5)
	token := getToken(t, parent)

	// LevelSize completions in one module bump the level; the ten Spanish
	// number items make exactly one level
	var res progress.CompletionResult
	for i := 1; i <= progress.LevelSize; i++ {
		id := fmt.Sprintf("spanish-number-%d", i)
		req, rec := newAuthRequest(http.MethodPost, "/v1/progress/complete", token, completeBody(std.ID, id))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("complete %q: code = %v; body %s", id, rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}

	if !res.LevelUnlocked {
		t.Error("expected the last completion to unlock a level")
	}
	if res.ModuleLevel.Level != 2 {
		t.Errorf("Level = %d; want 2", res.ModuleLevel.Level)
	}
	if res.ModuleLevel.Progress != 0 {
		t.Errorf("Progress = %d; want 0 after the unlock", res.ModuleLevel.Progress)
	}
}

func Test_progressApi_overview(t *testing.T) {
	setup(t)

	parent := createUser(t, "Parent", "mopao", "mopao@test.cd", "", []string{user.RoleParent}, true)
	other := createUser(t, "Other", "othery", "other@test.cd", "", []string{user.RoleParent}, true)
	std := createStudent(t, parent.ID, "Zoe", 5)
	token := getToken(t, parent)

	for _, id := range []string{"counting_train", "alphabet_adventure"} {
		req, rec := newAuthRequest(http.MethodPost, "/v1/progress/complete", token, completeBody(std.ID, id))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("complete %q: code = %v; body %s", id, rec.Code, rec.Body.String())
		}
	}

	// ownership applies to reads too
	req, rec := newAuthRequest(http.MethodGet, "/v1/progress/"+std.ID, getToken(t, other))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unowned: code = %v; want 404", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/progress/"+std.ID, token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	var overview progress.Overview
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if overview.TotalCompleted != 2 {
		t.Errorf("TotalCompleted = %d; want 2", overview.TotalCompleted)
	}
	if len(overview.Modules) != 2 {
		t.Errorf("Modules = %d; want 2 (math + english)", len(overview.Modules))
	}
	if overview.Streak.Current != 1 {
		t.Errorf("Streak.Current = %d; want 1 (same-day completions count once)", overview.Streak.Current)
	}
}
