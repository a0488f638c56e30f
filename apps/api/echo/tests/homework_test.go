package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/homework"
	"github.com/playlearnspark/backend/core/user"
)

func Test_homeworkApi_analyze(t *testing.T) {
	setup(t)

	usr := createUser(t, "Parent", "mopao", "mopao@test.cd", "", nil, true)
	token := getToken(t, usr)

	body := []byte(`{"subject":"Math","question":"If Zoe has 3 apples and gets 2 more, how many does she have?"}`)

	tests := []httpTest{
		{name: "auth required", body: body, wantCode: http.StatusUnauthorized},
		{name: "missing subject", token: token, body: []byte(`{"question":"What is 3 plus 2 apples?"}`), wantCode: http.StatusBadRequest},
		{name: "question too short", token: token, body: []byte(`{"subject":"math","question":"3+2?"}`), wantCode: http.StatusBadRequest},
		{name: "analyze", token: token, body: body, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/homework/analyze", tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var res homework.Analysis
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if res.Subject != "math" {
				t.Errorf("Subject = %q; want math", res.Subject)
			}
			if res.Model != "static" {
				t.Errorf("Model = %q; want static", res.Model)
			}
			if len(res.Steps) == 0 || len(res.Hints) == 0 {
				t.Error("expected steps and hints")
			}
			if res.RemainingToday != core.Conf.HomeworkDailyLimit-1 {
				t.Errorf("RemainingToday = %d; want %d", res.RemainingToday, core.Conf.HomeworkDailyLimit-1)
			}
		})
	}
}

func Test_homeworkApi_dailyLimit(t *testing.T) {
	setup(t)

	usr := createUser(t, "Parent", "mopao", "mopao@test.cd", "", nil, true)
	token := getToken(t, usr)

	body := []byte(`{"subject":"Science","question":"Why does the moon change shape during the month?"}`)

	var res homework.Analysis
	for i := 0; i < core.Conf.HomeworkDailyLimit; i++ {
		req, rec := newAuthRequest(http.MethodPost, "/v1/homework/analyze", token, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: code = %v; body %s", i+1, rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
	if res.RemainingToday != 0 {
		t.Errorf("RemainingToday = %d; want 0 after the last allowed call", res.RemainingToday)
	}

	// one over the quota
	req, rec := newAuthRequest(http.MethodPost, "/v1/homework/analyze", token, body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusTooManyRequests,
		wantData: marchallObj(t, httpErr{Error: homework.ErrDailyLimitReached.Error()}),
	}, rec)

	// the quota is per account
	other := createUser(t, "Other", "othery", "other@test.cd", "", nil, true)
	req, rec = newAuthRequest(http.MethodPost, "/v1/homework/analyze", getToken(t, other), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other account: code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}

	// family plans get the premium quota
	fam := createUser(t, "Family", "famy", "fam@test.cd", "", []string{user.RoleParentFamily}, true)
	req, rec = newAuthRequest(http.MethodPost, "/v1/homework/analyze", getToken(t, fam), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("family account: code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.RemainingToday != core.Conf.HomeworkDailyLimitPremium-1 {
		t.Errorf("RemainingToday = %d; want %d", res.RemainingToday, core.Conf.HomeworkDailyLimitPremium-1)
	}
}
