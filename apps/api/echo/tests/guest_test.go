package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/playlearnspark/backend/apps/api/echo"
	"github.com/playlearnspark/backend/core/guest"
)

func startGuestSession(t *testing.T) echoapi.GuestSessionResponse {
	t.Helper()

	req, rec := newRequest(http.MethodPost, "/v1/guest/session")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var res echoapi.GuestSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return res
}

func Test_guestApi_start(t *testing.T) {
	setup(t)

	res := startGuestSession(t)
	if res.Session.ID == "" {
		t.Error("expected a session ID")
	}
	if res.Token == "" {
		t.Error("expected a guest token")
	}
	if res.Session.Points != 0 || len(res.Session.CompletedIDs) != 0 {
		t.Errorf("fresh session = %+v; want a blank one", res.Session)
	}

	// the token reads back the session
	req, rec := newAuthRequest(http.MethodGet, "/v1/guest/session", res.Token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, res.Session)}, rec)
}

func Test_guestApi_requiresGuestToken(t *testing.T) {
	setup(t)

	usr := createUser(t, "User", "awe", "awe@test.cd", "", nil, true)

	// no token at all
	req, rec := newRequest(http.MethodGet, "/v1/guest/session")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: code = %v; want 401", rec.Code)
	}

	// a regular user token is not a guest token
	req, rec = newAuthRequest(http.MethodGet, "/v1/guest/session", getToken(t, usr))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
}

func Test_guestApi_recordProgress(t *testing.T) {
	setup(t)

	session := startGuestSession(t)
	token := session.Token

	tests := []httpTest{
		{name: "unknown activity", body: []byte(`{"activity_id":"lol"}`), wantCode: http.StatusBadRequest},
		{name: "record", body: []byte(`{"activity_id":"counting_train"}`), wantCode: http.StatusOK},
		{name: "repeat is a no-op", body: []byte(`{"activity_id":"counting_train"}`), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/guest/session/progress", token, tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var res guest.RecordResult
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			switch tt.name {
			case "record":
				if res.AlreadyCompleted || res.PointsAwarded != 10 {
					t.Errorf("result = %+v; want 10 fresh points", res)
				}
				if res.Session.Points != 10 {
					t.Errorf("Points = %d; want 10", res.Session.Points)
				}
			case "repeat is a no-op":
				if !res.AlreadyCompleted || res.PointsAwarded != 0 {
					t.Errorf("result = %+v; want a no-op", res)
				}
				if res.Session.Points != 10 {
					t.Errorf("Points = %d; want 10 (unchanged)", res.Session.Points)
				}
			}
		})
	}
}

func Test_guestApi_end(t *testing.T) {
	setup(t)

	session := startGuestSession(t)
	token := session.Token

	req, rec := newAuthRequest(http.MethodDelete, "/v1/guest/session", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("end: code = %v; body %s", rec.Code, rec.Body.String())
	}

	// the session is gone, the token is useless
	req, rec = newAuthRequest(http.MethodGet, "/v1/guest/session", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: guest.ErrSessionNotFound.Error()}),
	}, rec)
}
