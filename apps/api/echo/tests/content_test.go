package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/playlearnspark/backend/core/content"
	"github.com/playlearnspark/backend/core/user"
)

func Test_contentApi_catalog(t *testing.T) {
	setup(t)

	tests := []httpTest{
		{name: "languages", path: "/v1/content/languages", wantCode: http.StatusOK, wantData: marchallObj(t, content.Languages)},
		{name: "language by code", path: "/v1/content/languages/malayalam", wantCode: http.StatusOK},
		{name: "unknown language", path: "/v1/content/languages/klingon", wantCode: http.StatusNotFound},
		{name: "activities", path: "/v1/content/activities", wantCode: http.StatusOK, wantData: marchallObj(t, content.Activities)},
		{name: "modules", path: "/v1/content/modules", wantCode: http.StatusOK, wantData: marchallObj(t, content.Modules())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the whole catalog is public
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			if tt.wantData == nil {
				if rec.Code != tt.wantCode {
					t.Errorf("code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_contentApi_queryActivities(t *testing.T) {
	setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/content/activities?category=math&age=3")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	var acts []content.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &acts); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(acts) == 0 {
		t.Fatal("expected math activities for a 3-year-old")
	}
	for _, act := range acts {
		if act.Category != content.CategoryMath {
			t.Errorf("activity %s has category %s; want math", act.ID, act.Category)
		}
		if 3 < act.MinAge || 3 > act.MaxAge {
			t.Errorf("activity %s (%d-%d) does not suit age 3", act.ID, act.MinAge, act.MaxAge)
		}
	}
}

func Test_contentApi_lessonLifecycle(t *testing.T) {
	setup(t)

	parent := createUser(t, "Parent", "mopao", "mopao@test.cd", "", []string{user.RoleParent}, true)
	educator := createUser(t, "Teach", "teachy", "teach@test.cd", "", []string{user.RoleEducator}, true)
	token := getToken(t, educator)

	newLesson := []byte(`{"title":"Counting to Ten","module":"math","body":"One, two, three.","status":"published"}`)

	// staff only
	req, rec := newRequest(http.MethodPost, "/v1/content/manage/lessons", newLesson)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: code = %v; want 401", rec.Code)
	}
	req, rec = newAuthRequest(http.MethodPost, "/v1/content/manage/lessons", getToken(t, parent), newLesson)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("parent: code = %v; want 403", rec.Code)
	}

	// create
	req, rec = newAuthRequest(http.MethodPost, "/v1/content/manage/lessons", token, newLesson)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var les content.Lesson
	if err := json.Unmarshal(rec.Body.Bytes(), &les); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if les.Slug != "counting-to-ten" {
		t.Errorf("Slug = %q; want counting-to-ten", les.Slug)
	}
	if les.Revision != 1 {
		t.Errorf("Revision = %d; want 1", les.Revision)
	}

	// unknown modules and duplicate titles are rejected
	req, rec = newAuthRequest(http.MethodPost, "/v1/content/manage/lessons", token,
		[]byte(`{"title":"Intro to Quantum Physics","module":"quantum","body":"Nope."}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown module: code = %v; want 400", rec.Code)
	}
	req, rec = newAuthRequest(http.MethodPost, "/v1/content/manage/lessons", token, newLesson)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate title: code = %v; want 400", rec.Code)
	}

	// published lessons are on the learner-facing endpoints
	req, rec = newRequest(http.MethodGet, "/v1/content/lessons?module=math")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, les)}, rec)

	req, rec = newRequest(http.MethodGet, "/v1/content/lessons/counting-to-ten")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, les)}, rec)

	// editing the body bumps the revision
	req, rec = newAuthRequest(http.MethodPut, "/v1/content/manage/lessons/"+les.ID, token,
		[]byte(`{"body":"One, two, three, four."}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: code = %v; body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &les); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if les.Revision != 2 {
		t.Errorf("Revision = %d; want 2", les.Revision)
	}

	// a status-only change records no snapshot
	req, rec = newAuthRequest(http.MethodPut, "/v1/content/manage/lessons/"+les.ID, token,
		[]byte(`{"status":"draft"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status update: code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/content/manage/lessons/"+les.ID+"/revisions", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("revisions: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var revs []content.LessonRevision
	if err := json.Unmarshal(rec.Body.Bytes(), &revs); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(revs) != 2 {
		t.Errorf("revisions = %d; want 2", len(revs))
	}

	// drafts drop off the learner-facing view
	req, rec = newRequest(http.MethodGet, "/v1/content/lessons/counting-to-ten")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("draft lesson: code = %v; want 404", rec.Code)
	}

	// delete
	req, rec = newAuthRequest(http.MethodDelete, "/v1/content/manage/lessons", token,
		[]byte(fmt.Sprintf(`{"ids":[%q]}`, les.ID)))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: code = %v; body %s", rec.Code, rec.Body.String())
	}
	req, rec = newAuthRequest(http.MethodGet, "/v1/content/manage/lessons/"+les.ID, token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted lesson: code = %v; want 404", rec.Code)
	}
}

func Test_contentApi_compareRevisions(t *testing.T) {
	setup(t)

	educator := createUser(t, "Teach", "teachy", "teach@test.cd", "", []string{user.RoleEducator}, true)
	token := getToken(t, educator)

	les, err := contentSvc.Create(ctxBg(), content.NewLesson{
		Title:  "Shapes",
		Module: "math",
		Body:   "Circle\nSquare",
		Status: content.StatusDraft,
	}, educator.ID)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if _, err := contentSvc.Update(ctxBg(), les.ID, content.UpdateLesson{
		Title:  les.Title,
		Body:   "Circle\nSquare\nTriangle",
		Status: les.Status,
	}, educator.ID); err != nil {
		t.Fatalf("Update(): %v", err)
	}

	// `from` is required
	req, rec := newAuthRequest(http.MethodGet, "/v1/content/manage/lessons/"+les.ID+"/compare", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing from: code = %v; want 400", rec.Code)
	}

	// `to` defaults to the latest revision
	req, rec = newAuthRequest(http.MethodGet, "/v1/content/manage/lessons/"+les.ID+"/compare?from=1", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var diff content.RevisionDiff
	if err := json.Unmarshal(rec.Body.Bytes(), &diff); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if diff.From != 1 || diff.To != 2 {
		t.Errorf("From/To = %d/%d; want 1/2", diff.From, diff.To)
	}
	if diff.Diff.Added != 1 || diff.Diff.Removed != 0 {
		t.Errorf("Added/Removed = %d/%d; want 1/0", diff.Diff.Added, diff.Diff.Removed)
	}

	// unknown revisions are not found
	req, rec = newAuthRequest(http.MethodGet, "/v1/content/manage/lessons/"+les.ID+"/compare?from=1&to=9", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown revision: code = %v; want 404", rec.Code)
	}
}

func Test_contentApi_importRequiresFile(t *testing.T) {
	setup(t)

	educator := createUser(t, "Teach", "teachy", "teach@test.cd", "", []string{user.RoleEducator}, true)

	req, rec := newAuthRequest(http.MethodPost, "/v1/content/manage/lessons/import", getToken(t, educator))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %v; want 400; body %s", rec.Code, rec.Body.String())
	}
}
