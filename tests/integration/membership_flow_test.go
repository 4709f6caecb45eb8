package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srpnetwork/realty-api/internal/models"
)

// TestMembershipLifecycle walks the whole member journey over real HTTP and a
// real database: registration, pending gate, admin approval, favorites.
func TestMembershipLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	testDB, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	_, err = SeedMember(ctx, testDB.DB, "admin@test.local", "AdminPassword123", "Admin", models.RoleAdmin, models.StatusActive)
	require.NoError(t, err)

	property, err := SeedProperty(ctx, testDB.DB, SampleProperty("Lekki Pearl Towers"))
	require.NoError(t, err)

	memberEmail, memberPassword := TestMember("lifecycle")

	// ============================================================
	// Registration lands in pending and notifies the admin
	// ============================================================

	resp, err := ts.Request(http.MethodPost, "/auth/register", map[string]string{
		"name":     "Ada Obi",
		"email":    memberEmail,
		"password": memberPassword,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registerResp map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &registerResp))

	memberToken, ok := registerResp["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, memberToken)

	profile, ok := registerResp["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, profile["status"])
	assert.Equal(t, models.RoleMember, profile["role"])

	adminEmails := ts.Emails.EmailsTo(ts.Config.Email.AdminAddress)
	require.NotEmpty(t, adminEmails, "admin should be notified of the registration")

	// ============================================================
	// Pending members are blocked from member-only surfaces
	// ============================================================

	resp, err = ts.RequestWithAuth(http.MethodGet, "/profiles/me/favorites", memberToken, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// ============================================================
	// Admin approves the member
	// ============================================================

	resp, err = ts.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@test.local",
		"password": "AdminPassword123",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	adminToken, _, err := ExtractTokensFromResponse(resp)
	require.NoError(t, err)
	require.NotEmpty(t, adminToken)

	ts.Emails.Reset()

	resp, err = ts.RequestWithAuth(http.MethodPost, "/api/approve-member", adminToken, map[string]string{
		"userEmail": memberEmail,
		"userName":  "Ada Obi",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var approveResp map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &approveResp))
	assert.Equal(t, true, approveResp["success"])

	approvalEmails := ts.Emails.EmailsTo(memberEmail)
	require.Len(t, approvalEmails, 1)
	assert.Contains(t, approvalEmails[0].Subject, "Approved")

	// ============================================================
	// Approved member can toggle and list favorites
	// ============================================================

	resp, err = ts.RequestWithAuth(http.MethodPost, "/profiles/me/favorites", memberToken, map[string]string{
		"propertyId": property.ID,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var toggleResp map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &toggleResp))
	assert.Equal(t, true, toggleResp["favorited"])

	resp, err = ts.RequestWithAuth(http.MethodGet, "/profiles/me/favorites", memberToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listResp map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &listResp))
	favorites, ok := listResp["favorites"].([]interface{})
	require.True(t, ok)
	require.Len(t, favorites, 1)
	assert.Equal(t, property.ID, favorites[0])

	// ============================================================
	// Admin fan-out reaches the favorite holder
	// ============================================================

	ts.Emails.Reset()

	resp, err = ts.RequestWithAuth(http.MethodPost, "/api/notify-favorites", adminToken, map[string]interface{}{
		"propertyId": property.ID,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notifyResp map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &notifyResp))
	assert.Equal(t, true, notifyResp["success"])
	assert.Equal(t, float64(0), notifyResp["failures"])

	updateEmails := ts.Emails.EmailsTo(memberEmail)
	require.Len(t, updateEmails, 1)
	assert.Contains(t, updateEmails[0].Subject, "Lekki Pearl Towers")
}

// TestContactFormReachesAdmin submits the public contact form and checks the
// inquiry lands in the admin inbox.
func TestContactFormReachesAdmin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	testDB, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	resp, err := ts.Request(http.MethodPost, "/api/contact", map[string]string{
		"name":     "Chidi Eze",
		"email":    "chidi@example.com",
		"phone":    "+2348012345678",
		"interest": "Partnership",
		"message":  "I would like to join the partner network.",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var contactResp map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &contactResp))
	assert.Equal(t, true, contactResp["success"])

	adminEmails := ts.Emails.EmailsTo(ts.Config.Email.AdminAddress)
	require.Len(t, adminEmails, 1)
	assert.Contains(t, adminEmails[0].Text, "chidi@example.com")
}
