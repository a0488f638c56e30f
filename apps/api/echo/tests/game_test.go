package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/user"
)

func scoreBody(studentID, gameID string, score int) []byte {
	return []byte(fmt.Sprintf(`{"student_id":%q,"game_id":%q,"score":%d}`, studentID, gameID, score))
}

func Test_gameApi_list(t *testing.T) {
	setup(t)

	parent := createUser(t, "Parent", "mopao", "mopao@test.cd", "", []string{user.RoleParent}, true)
	std := createStudent(t, parent.ID, "Zoe", 5)
	token := getToken(t, parent)

	listGames := func() []game.Info {
		req, rec := newAuthRequest(http.MethodGet, "/v1/games?student_id="+std.ID, token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var infos []game.Info
		if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		return infos
	}

	// a fresh learner has everything locked
	infos := listGames()
	if len(infos) != len(game.Games) {
		t.Fatalf("games = %d; want %d", len(infos), len(game.Games))
	}
	for _, info := range infos {
		if !info.Locked {
			t.Errorf("game %s should be locked at 0 points", info.ID)
		}
	}

	// earning MinPointsToPlay unlocks the arcade
	if _, _, err := rewardSvc.Award(ctxBg(), std.ID, game.MinPointsToPlay, reward.ReasonActivity, "counting_train"); err != nil {
		t.Fatalf("Award(): %v", err)
	}
	for _, info := range listGames() {
		if info.Locked {
			t.Errorf("game %s still locked at %d points", info.ID, game.MinPointsToPlay)
		}
	}
}

func Test_gameApi_submitScore(t *testing.T) {
	setup(t)

	parent := createUser(t, "Parent", "mopao", "mopao@test.cd", "", []string{user.RoleParent}, true)
	other := createUser(t, "Other", "othery", "other@test.cd", "", []string{user.RoleParent}, true)
	std := createStudent(t, parent.ID, "Zoe", 5)
	token := getToken(t, parent)

	// games are locked until the learner has earned some points
	req, rec := newAuthRequest(http.MethodPost, "/v1/games/scores", token, scoreBody(std.ID, "memory-match", 80))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("locked: code = %v; want 400; body %s", rec.Code, rec.Body.String())
	}

	if _, _, err := rewardSvc.Award(ctxBg(), std.ID, 10, reward.ReasonActivity, "counting_train"); err != nil {
		t.Fatalf("Award(): %v", err)
	}

	tests := []httpTest{
		{name: "auth required", body: scoreBody(std.ID, "memory-match", 80), wantCode: http.StatusUnauthorized},
		{name: "unowned profile", token: getToken(t, other), body: scoreBody(std.ID, "memory-match", 80), wantCode: http.StatusNotFound},
		{name: "unknown game", token: token, body: scoreBody(std.ID, "lol", 80), wantCode: http.StatusBadRequest},
		{name: "negative score", token: token, body: scoreBody(std.ID, "memory-match", -1), wantCode: http.StatusBadRequest},
		{name: "first play pays the bonus", token: token, body: scoreBody(std.ID, "memory-match", 80), wantCode: http.StatusOK},
		{name: "lower score pays nothing", token: token, body: scoreBody(std.ID, "memory-match", 50), wantCode: http.StatusOK},
		{name: "beaten best pays again", token: token, body: scoreBody(std.ID, "memory-match", 120), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/games/scores", tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var res game.ScoreResult
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			switch tt.name {
			case "first play pays the bonus":
				if !res.NewHighScore || res.BonusAwarded != game.HighScoreBonus {
					t.Errorf("result = %+v; want a %d-point bonus", res, game.HighScoreBonus)
				}
				if res.HighScore != 80 {
					t.Errorf("HighScore = %d; want 80", res.HighScore)
				}
			case "lower score pays nothing":
				if res.NewHighScore || res.BonusAwarded != 0 {
					t.Errorf("result = %+v; want no bonus", res)
				}
				if res.HighScore != 80 {
					t.Errorf("HighScore = %d; want 80 (unchanged)", res.HighScore)
				}
			case "beaten best pays again":
				if !res.NewHighScore || res.HighScore != 120 {
					t.Errorf("result = %+v; want a new best of 120", res)
				}
			}
		})
	}

	// all three plays are in the history
	req, rec = newAuthRequest(http.MethodGet, "/v1/games/memory-match/scores?student_id="+std.ID, token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("scores: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var scores []game.Score
	if err := json.Unmarshal(rec.Body.Bytes(), &scores); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("scores = %d; want 3", len(scores))
	}
}

func Test_gameApi_leaderboard(t *testing.T) {
	setup(t)

	parent := createUser(t, "Parent", "mopao", "mopao@test.cd", "", []string{user.RoleParent}, true)
	std1 := createStudent(t, parent.ID, "Zoe", 5)
	std2 := createStudent(t, parent.ID, "Max", 7)
	token := getToken(t, parent)

	for _, std := range []string{std1.ID, std2.ID} {
		if _, _, err := rewardSvc.Award(ctxBg(), std, 10, reward.ReasonActivity, "counting_train"); err != nil {
			t.Fatalf("Award(): %v", err)
		}
	}
	for _, play := range []struct {
		studentID string
		score     int
	}{
		{std1.ID, 40},
		{std2.ID, 90},
		{std1.ID, 60}, // personal best counts, not the latest play
	} {
		req, rec := newAuthRequest(http.MethodPost, "/v1/games/scores", token, scoreBody(play.studentID, "number-dash", play.score))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("submit: code = %v; body %s", rec.Code, rec.Body.String())
		}
	}

	// unknown games have no board
	req, rec := newRequest(http.MethodGet, "/v1/games/lol/leaderboard")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown game: code = %v; want 400", rec.Code)
	}

	// the board is public
	req, rec = newRequest(http.MethodGet, "/v1/games/number-dash/leaderboard")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var entries []game.LeaderboardEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	want := []game.LeaderboardEntry{
		{Rank: 1, StudentID: std2.ID, Score: 90},
		{Rank: 2, StudentID: std1.ID, Score: 60},
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %+v; want %+v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v; want %+v", i, entries[i], want[i])
		}
	}

	// limit trims the board
	req, rec = newRequest(http.MethodGet, "/v1/games/number-dash/leaderboard?limit=1")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	entries = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(entries) != 1 || entries[0].StudentID != std2.ID {
		t.Errorf("entries = %+v; want just the leader", entries)
	}
}
