//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymlog/internal/drafts"
	"github.com/2beens/gymlog/internal/workout"
	"github.com/2beens/gymlog/internal/workout/draft"
)

func (s *IntegrationTestSuite) applyOp(ctx context.Context, token, draftID string, op drafts.Op) drafts.OpResponse {
	code, body := doRequest(ctx, s.T(), s.httpClient, http.MethodPost, "/drafts/"+draftID+"/ops", token, op)
	s.Require().Equal(http.StatusOK, code, string(body))
	var resp drafts.OpResponse
	s.Require().NoError(json.Unmarshal(body, &resp))
	return resp
}

func (s *IntegrationTestSuite) TestDraftToWorkout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	code, body := doRequest(ctx, t, s.httpClient, http.MethodPost, "/drafts", token, nil)
	s.Require().Equal(http.StatusCreated, code, string(body))
	var d draft.WorkoutDraft
	s.Require().NoError(json.Unmarshal(body, &d))
	s.Require().Len(d.Exercises, 1)
	exerciseID := d.Exercises[0].ID
	setID := d.Exercises[0].Sets[0].ID

	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpSetName, Value: "Leg Day"})
	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpSetDuration, Value: "50"})
	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpToggleCategory, Tag: string(draft.CategoryStrength)})
	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpUpdateExerciseName, ExerciseID: exerciseID, Value: "Squat"})

	// not valid yet: no muscle group picked
	code, body = doRequest(ctx, t, s.httpClient, http.MethodGet, "/drafts/"+d.ID+"/validation", token, nil)
	s.Require().Equal(http.StatusOK, code)
	var validation drafts.ValidationResponse
	s.Require().NoError(json.Unmarshal(body, &validation))
	s.False(validation.Valid)
	s.Equal(1, validation.Exercise)

	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpToggleMuscleGroup, ExerciseID: exerciseID, Tag: string(draft.MuscleGroupLegs)})
	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpUpdateSet, ExerciseID: exerciseID, SetID: setID, Field: string(draft.SetFieldWeight), Value: "100"})
	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpUpdateSet, ExerciseID: exerciseID, SetID: setID, Field: string(draft.SetFieldReps), Value: "5"})
	added := s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpAddSet, ExerciseID: exerciseID})
	s.NotEmpty(added.CreatedID)
	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpUpdateSet, ExerciseID: exerciseID, SetID: added.CreatedID, Field: string(draft.SetFieldWeight), Value: "110"})
	s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpUpdateSet, ExerciseID: exerciseID, SetID: added.CreatedID, Field: string(draft.SetFieldReps), Value: "3"})

	// a rejected op leaves the draft as it was
	code, _ = doRequest(ctx, t, s.httpClient, http.MethodPost, "/drafts/"+d.ID+"/ops", token, drafts.Op{Op: drafts.OpDeleteSet, ExerciseID: exerciseID, SetID: "missing"})
	s.Equal(http.StatusBadRequest, code)

	code, body = doRequest(ctx, t, s.httpClient, http.MethodPost, "/drafts/"+d.ID+"/submit", token, nil)
	s.Require().Equal(http.StatusCreated, code, string(body))
	var saved workout.Workout
	s.Require().NoError(json.Unmarshal(body, &saved))
	s.Equal("Leg Day", saved.Name)
	s.Equal(s.userID, saved.OwnerID)
	s.Require().Len(saved.Exercises, 1)
	s.Len(saved.Exercises[0].Sets, 2)

	// the draft is gone once saved
	code, _ = doRequest(ctx, t, s.httpClient, http.MethodGet, "/drafts/"+d.ID, token, nil)
	s.Equal(http.StatusNotFound, code)

	code, body = doRequest(ctx, t, s.httpClient, http.MethodGet, "/workouts", token, nil)
	s.Require().Equal(http.StatusOK, code)
	var history []workout.Workout
	s.Require().NoError(json.Unmarshal(body, &history))
	s.Require().NotEmpty(history)
	s.Equal(saved.ID, history[0].ID)
}

func (s *IntegrationTestSuite) TestDraftFromCatalog() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	code, body := doRequest(ctx, t, s.httpClient, http.MethodPost, "/drafts", token, nil)
	s.Require().Equal(http.StatusCreated, code)
	var d draft.WorkoutDraft
	s.Require().NoError(json.Unmarshal(body, &d))

	resp := s.applyOp(ctx, token, d.ID, drafts.Op{Op: drafts.OpAddCatalogExercise, Value: "Barbell_Squat"})
	s.NotEmpty(resp.CreatedID)
	s.Require().Len(resp.Draft.Exercises, 2)
	s.Equal("Barbell Squat", resp.Draft.Exercises[1].Name)
	s.Equal("Barbell_Squat", resp.Draft.Exercises[1].CatalogID)

	code, _ = doRequest(ctx, t, s.httpClient, http.MethodPost, "/drafts/"+d.ID+"/ops", token, drafts.Op{Op: drafts.OpAddCatalogExercise, Value: "Moon_Walk"})
	s.Equal(http.StatusBadRequest, code)

	code, _ = doRequest(ctx, t, s.httpClient, http.MethodDelete, "/drafts/"+d.ID, token, nil)
	s.Equal(http.StatusOK, code)
	code, _ = doRequest(ctx, t, s.httpClient, http.MethodDelete, "/drafts/"+d.ID, token, nil)
	s.Equal(http.StatusNotFound, code)
}
