package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"event-registration/models"
	"event-registration/utils"
	"event-registration/workflow"
)

type RegistrationController struct{}

// Register submits a registration. All field failures come back together so
// the form can highlight every offending field at once.
func (rc *RegistrationController) Register(wf *workflow.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.RegistrationInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid body"})
			return
		}
		defer r.Body.Close()

		id, failures, err := wf.Submit(r.Context(), input)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to save registration"})
			return
		}
		if len(failures) > 0 {
			utils.ResponseJSONStatus(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"errors": failures,
			})
			return
		}

		utils.ResponseJSONStatus(w, http.StatusCreated, map[string]interface{}{
			"id":      id,
			"message": fmt.Sprintf("Thank you for registering! A confirmation email has been sent to %s.", input.Email),
		})
	}
}
