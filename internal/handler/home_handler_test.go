package handler_test

import (
	"net/http"
	"testing"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
)

func TestHomeAnonymous(t *testing.T) {
	setupTest(t)
	e := newEcho()

	rec := doJSON(t, e, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["page"] != "home" {
		t.Errorf("expected the landing payload, got %v", body)
	}
}

func TestHomeDispatchesByRole(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	cases := []struct {
		role model.Role
		want string
	}{
		{model.RoleStudent, "/student/dashboard"},
		{model.RoleFirm, "/firm/dashboard"},
		{model.RoleClient, "/client/dashboard"},
	}
	for _, tc := range cases {
		_, token := createUser(t, db, "user_"+string(tc.role), tc.role)
		rec := doJSON(t, e, http.MethodGet, "/", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("role %s: expected 200, got %d: %s", tc.role, rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["dashboard"] != tc.want {
			t.Errorf("role %s: expected %s, got %v", tc.role, tc.want, body["dashboard"])
		}
	}
}

func TestHomeCorruptFirmStateForcesLogout(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	firmUser, token := createUser(t, db, "firm1", model.RoleFirm)
	if err := db.Where("user_id = ?", firmUser.ID).Delete(&model.Firm{}).Error; err != nil {
		t.Fatalf("failed to delete firm row: %v", err)
	}

	rec := doJSON(t, e, http.MethodGet, "/", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["logout"] != true {
		t.Errorf("expected logout flag, got %v", body)
	}
}

func TestNotificationsOwnership(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	owner, ownerToken := createUser(t, db, "owner", model.RoleStudent)
	_, otherToken := createUser(t, db, "other", model.RoleStudent)

	notification := model.Notification{UserID: owner.ID, Message: "hello"}
	if err := db.Create(&notification).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}

	// Only the owner sees it
	rec := doJSON(t, e, http.MethodGet, "/notifications", otherToken, nil)
	body := decodeBody(t, rec)
	if list := body["notifications"].([]interface{}); len(list) != 0 {
		t.Errorf("expected no notifications for the other user, got %d", len(list))
	}

	// Only the owner can mark it read
	rec = doJSON(t, e, http.MethodPost, "/notifications/"+itoa(notification.ID)+"/read", otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-owner, got %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodPost, "/notifications/"+itoa(notification.ID)+"/read", ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", rec.Code)
	}

	var got model.Notification
	if err := db.First(&got, notification.ID).Error; err != nil {
		t.Fatalf("notification lookup failed: %v", err)
	}
	if !got.IsRead {
		t.Error("notification must be marked read")
	}
}
