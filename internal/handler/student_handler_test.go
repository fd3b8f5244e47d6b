package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"

	"gorm.io/gorm"
)

func seedInternship(t *testing.T, db *gorm.DB, firmID uint, title, company, location, mode string, stipend int64) model.Internship {
	t.Helper()
	internship := model.Internship{
		FirmID:      firmID,
		Title:       title,
		Description: "Work on " + title,
		Location:    location,
		CompanyName: company,
		Stipend:     stipend,
		Duration:    "6 months",
		Deadline:    time.Now().AddDate(0, 1, 0),
		Mode:        mode,
	}
	if err := db.Create(&internship).Error; err != nil {
		t.Fatalf("failed to seed internship: %v", err)
	}
	return internship
}

func availableTitles(t *testing.T, rec map[string]interface{}) []string {
	t.Helper()
	raw, ok := rec["available_internships"].([]interface{})
	if !ok {
		t.Fatalf("missing available_internships in %v", rec)
	}
	titles := make([]string, 0, len(raw))
	for _, item := range raw {
		entry := item.(map[string]interface{})
		titles = append(titles, entry["title"].(string))
	}
	return titles
}

func TestStudentDashboardStipendFilter(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	firmUser, _ := createUser(t, db, "firm1", model.RoleFirm)
	firm := firmFor(t, db, firmUser.ID)
	seedInternship(t, db, firm.ID, "Paid Role", "Acme", "Mumbai", "remote", 15000)
	seedInternship(t, db, firm.ID, "Unpaid Role", "Acme", "Mumbai", "remote", 0)

	_, token := createUser(t, db, "student1", model.RoleStudent)

	rec := doJSON(t, e, http.MethodGet, "/student/dashboard?stipend=paid", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	titles := availableTitles(t, decodeBody(t, rec))
	if len(titles) != 1 || titles[0] != "Paid Role" {
		t.Errorf("paid filter must return only stipend > 0, got %v", titles)
	}

	rec = doJSON(t, e, http.MethodGet, "/student/dashboard?stipend=unpaid", token, nil)
	titles = availableTitles(t, decodeBody(t, rec))
	if len(titles) != 1 || titles[0] != "Unpaid Role" {
		t.Errorf("unpaid filter must return only stipend == 0, got %v", titles)
	}
}

func TestStudentDashboardFiltersCompose(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	firmUser, _ := createUser(t, db, "firm1", model.RoleFirm)
	firm := firmFor(t, db, firmUser.ID)
	seedInternship(t, db, firm.ID, "Backend Intern", "Acme", "Mumbai", "remote", 10000)
	seedInternship(t, db, firm.ID, "Backend Intern", "Acme", "Pune", "onsite", 10000)
	seedInternship(t, db, firm.ID, "Design Intern", "Acme", "Mumbai", "remote", 10000)

	_, token := createUser(t, db, "student1", model.RoleStudent)

	rec := doJSON(t, e, http.MethodGet, "/student/dashboard?search=backend&location=mum&mode=remote", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	titles := availableTitles(t, decodeBody(t, rec))
	if len(titles) != 1 || titles[0] != "Backend Intern" {
		t.Errorf("composed filters must AND together, got %v", titles)
	}
}

func TestStudentDashboardExcludesAppliedInternships(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	firmUser, _ := createUser(t, db, "firm1", model.RoleFirm)
	firm := firmFor(t, db, firmUser.ID)
	target := seedInternship(t, db, firm.ID, "Applied Role", "Acme", "Mumbai", "remote", 5000)
	seedInternship(t, db, firm.ID, "Open Role", "Acme", "Mumbai", "remote", 5000)

	student, token := createUser(t, db, "student1", model.RoleStudent)
	application := model.Application{
		InternshipID:  target.ID,
		StudentID:     student.ID,
		FirstName:     "A",
		LastName:      "B",
		Email:         "a@b.com",
		PhoneNumber:   "1234567890",
		CollegeName:   "IIT",
		YearOfPassing: 2026,
		CGPA:          8.5,
		ResumeKey:     "resumes/x.pdf",
	}
	if err := db.Create(&application).Error; err != nil {
		t.Fatalf("failed to seed application: %v", err)
	}

	rec := doJSON(t, e, http.MethodGet, "/student/dashboard", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	titles := availableTitles(t, decodeBody(t, rec))
	for _, title := range titles {
		if title == "Applied Role" {
			t.Error("applied internship must not appear in the available listing")
		}
	}
	if len(titles) != 1 || titles[0] != "Open Role" {
		t.Errorf("expected only the open role, got %v", titles)
	}
}

func TestApplyInjectsIdentityAndNotifiesFirm(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	firmUser, _ := createUser(t, db, "firm1", model.RoleFirm)
	firm := firmFor(t, db, firmUser.ID)
	internship := seedInternship(t, db, firm.ID, "Backend Intern", "Acme", "Mumbai", "remote", 5000)

	student, token := createUser(t, db, "student1", model.RoleStudent)

	rec := doJSON(t, e, http.MethodPost, "/internship/apply/"+itoa(internship.ID), token, map[string]interface{}{
		"first_name":      "Asha",
		"last_name":       "Rao",
		"email":           "asha@example.com",
		"phone_number":    "9876543210",
		"college_name":    "NIT Trichy",
		"year_of_passing": 2026,
		"cgpa":            9.1,
		"resume_key":      "resumes/asha.pdf",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var application model.Application
	if err := db.First(&application).Error; err != nil {
		t.Fatalf("application not created: %v", err)
	}
	if application.StudentID != student.ID || application.InternshipID != internship.ID {
		t.Errorf("identity must be injected server-side, got student=%d internship=%d",
			application.StudentID, application.InternshipID)
	}

	var notifications int64
	db.Model(&model.Notification{}).Where("user_id = ?", firmUser.ID).Count(&notifications)
	if notifications != 1 {
		t.Errorf("expected 1 notification for the firm user, got %d", notifications)
	}
}

func TestApplyRejectsInvalidFields(t *testing.T) {
	db := setupTest(t)
	e := newEcho()

	firmUser, _ := createUser(t, db, "firm1", model.RoleFirm)
	firm := firmFor(t, db, firmUser.ID)
	internship := seedInternship(t, db, firm.ID, "Backend Intern", "Acme", "Mumbai", "remote", 5000)

	_, token := createUser(t, db, "student1", model.RoleStudent)

	rec := doJSON(t, e, http.MethodPost, "/internship/apply/"+itoa(internship.ID), token, map[string]interface{}{
		"first_name": "Asha",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var applications int64
	db.Model(&model.Application{}).Count(&applications)
	if applications != 0 {
		t.Errorf("invalid application must not be persisted, got %d", applications)
	}
}

func TestApplyUnknownInternship(t *testing.T) {
	db := setupTest(t)
	e := newEcho()
	_, token := createUser(t, db, "student1", model.RoleStudent)

	rec := doJSON(t, e, http.MethodPost, "/internship/apply/999", token, map[string]interface{}{
		"first_name": "Asha",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
