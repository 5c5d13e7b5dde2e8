package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStartBody() map[string]interface{} {
	return map[string]interface{}{
		"email":     "test@example.com",
		"firstName": "John",
		"lastName":  "Doe",
		"company":   "Test Company",
		"role":      "Developer",
	}
}

// startOnboarding runs the start endpoint and returns the created user id.
func startOnboarding(t *testing.T, env *testEnv, body map[string]interface{}) string {
	t.Helper()

	resp := env.do(t, "POST", "/api/onboarding/start", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := parseMap(t, resp)
	user := result["user"].(map[string]interface{})
	return user["id"].(string)
}

func TestStartOnboarding(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "POST", "/api/onboarding/start", "", validStartBody())
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Onboarding started successfully", result["message"])

		user := result["user"].(map[string]interface{})
		assert.Equal(t, "test@example.com", user["email"])
		assert.Equal(t, "John", user["firstName"])
		assert.Equal(t, "Doe", user["lastName"])
		assert.Equal(t, false, user["onboardingCompleted"])

		_, err := uuid.Parse(user["id"].(string))
		assert.NoError(t, err)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "POST", "/api/onboarding/start", "", map[string]interface{}{
			"email":     "  test@example.com  ",
			"firstName": "  John  ",
			"lastName":  "  Doe  ",
			"company":   "  Test Company  ",
			"role":      "  Developer  ",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		result := parseMap(t, resp)
		user := result["user"].(map[string]interface{})
		assert.Equal(t, "test@example.com", user["email"])
		assert.Equal(t, "John", user["firstName"])
	})

	t.Run("MissingFields", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "POST", "/api/onboarding/start", "", map[string]interface{}{
			"email": "test@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Missing required fields", result["error"])
		assert.ElementsMatch(t, []interface{}{"firstName", "lastName"}, result["details"])
	})

	t.Run("EmptyBody", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "POST", "/api/onboarding/start", "", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Missing required fields", result["error"])
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		env := newTestEnv(t)

		body := validStartBody()
		body["email"] = "invalid-email-format"
		resp := env.do(t, "POST", "/api/onboarding/start", "", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Invalid email format", result["error"])
	})

	t.Run("FieldsTooLong", func(t *testing.T) {
		env := newTestEnv(t)

		long := make([]byte, 300)
		for i := range long {
			long[i] = 'a'
		}
		body := validStartBody()
		body["firstName"] = string(long)
		resp := env.do(t, "POST", "/api/onboarding/start", "", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Field values too long", result["error"])
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		env := newTestEnv(t)
		startOnboarding(t, env, validStartBody())

		resp := env.do(t, "POST", "/api/onboarding/start", "", validStartBody())
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "User with this email already exists", result["error"])
	})

	t.Run("DuplicateEmailCaseInsensitive", func(t *testing.T) {
		env := newTestEnv(t)
		startOnboarding(t, env, validStartBody())

		body := validStartBody()
		body["email"] = "TEST@example.com"
		resp := env.do(t, "POST", "/api/onboarding/start", "", body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.doRaw(t, "POST", "/api/onboarding/start", "", "application/json", `not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Invalid JSON format", result["error"])
	})
}

func TestOnboardingSteps(t *testing.T) {
	t.Run("ListsWizardOrder", func(t *testing.T) {
		env := newTestEnv(t)
		userID := startOnboarding(t, env, validStartBody())

		resp := env.do(t, "GET", "/api/onboarding/steps/"+userID, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, float64(0), result["completedSteps"])
		assert.Equal(t, float64(3), result["totalSteps"])

		steps := result["steps"].([]interface{})
		require.Len(t, steps, 3)
		names := make([]string, 0, 3)
		for _, raw := range steps {
			step := raw.(map[string]interface{})
			names = append(names, step["step"].(string))
			assert.Equal(t, false, step["completed"])
			assert.Equal(t, userID, step["userId"])
		}
		assert.Equal(t, []string{"profile", "preferences", "verification"}, names)
	})

	t.Run("InvalidUserID", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "GET", "/api/onboarding/steps/invalid", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Invalid user ID", result["error"])
	})

	t.Run("UnknownUser", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "GET", "/api/onboarding/steps/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "User not found or no onboarding steps", result["error"])
	})
}

func TestUpdateOnboardingStep(t *testing.T) {
	stepIDs := func(t *testing.T, env *testEnv, userID string) []string {
		t.Helper()
		resp := env.do(t, "GET", "/api/onboarding/steps/"+userID, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := parseMap(t, resp)
		var ids []string
		for _, raw := range result["steps"].([]interface{}) {
			ids = append(ids, raw.(map[string]interface{})["id"].(string))
		}
		return ids
	}

	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		userID := startOnboarding(t, env, validStartBody())
		ids := stepIDs(t, env, userID)

		resp := env.do(t, "PUT", "/api/onboarding/step/"+ids[1], "", map[string]interface{}{
			"completed": true,
			"data":      map[string]interface{}{"preferences": []string{"email", "push"}},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Step updated successfully", result["message"])

		step := result["step"].(map[string]interface{})
		assert.Equal(t, "preferences", step["step"])
		assert.Equal(t, true, step["completed"])
		data := step["data"].(map[string]interface{})
		assert.Equal(t, []interface{}{"email", "push"}, data["preferences"])

		// completion count reflects the update
		listResp := env.do(t, "GET", "/api/onboarding/steps/"+userID, "", nil)
		listResult := parseMap(t, listResp)
		assert.Equal(t, float64(1), listResult["completedSteps"])
	})

	t.Run("InvalidStepID", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "PUT", "/api/onboarding/step/invalid", "", map[string]interface{}{"completed": true})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Invalid step ID", result["error"])
	})

	t.Run("UnknownStep", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "PUT", "/api/onboarding/step/"+uuid.NewString(), "", map[string]interface{}{"completed": true})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Onboarding step not found", result["error"])
	})

	t.Run("InvalidDataTypes", func(t *testing.T) {
		env := newTestEnv(t)
		userID := startOnboarding(t, env, validStartBody())
		ids := stepIDs(t, env, userID)

		resp := env.do(t, "PUT", "/api/onboarding/step/"+ids[0], "", map[string]interface{}{
			"completed": "not a boolean",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Invalid data types", result["error"])
	})
}

func TestCompleteOnboarding(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		userID := startOnboarding(t, env, validStartBody())

		resp := env.do(t, "POST", "/api/onboarding/complete/"+userID, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Onboarding completed successfully", result["message"])

		user := result["user"].(map[string]interface{})
		assert.Equal(t, true, user["onboardingCompleted"])
	})

	t.Run("InvalidUserID", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "POST", "/api/onboarding/complete/invalid", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "Invalid user ID", result["error"])
	})

	t.Run("UnknownUser", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, "POST", "/api/onboarding/complete/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		result := parseMap(t, resp)
		assert.Equal(t, "User not found", result["error"])
	})
}
