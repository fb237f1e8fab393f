package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/h2non/gock"

	"wordfilter/pkg/models"
)

const serviceURL = "http://censor.local:8055"

func newComment(text string) models.Comment {
	return models.Comment{
		PostID: uuid.NewV5(uuid.NamespaceURL, "post"),
		Author: "Some Dude",
		Text:   text,
	}
}

func TestClient_Check(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/check").
		MatchHeader("X-Request-Id", "req-1").
		Reply(http.StatusUnprocessableEntity).
		JSON(models.Verdict{Bad: true})

	c := New(serviceURL, 0)
	bad, err := c.Check(WithRequestID(context.Background(), "req-1"), newComment("bad words"))
	if err != nil {
		t.Fatalf("Check unexpected error: %v", err)
	}
	if !bad {
		t.Error("want bad verdict")
	}

	gock.New(serviceURL).
		Post("/check").
		Reply(http.StatusOK).
		JSON(models.Verdict{Bad: false})

	bad, err = c.Check(context.Background(), newComment("nice words"))
	if err != nil {
		t.Fatalf("Check unexpected error: %v", err)
	}
	if bad {
		t.Error("want clean verdict")
	}

	if !gock.IsDone() {
		t.Error("want all mocked requests to be consumed")
	}
}

func TestClient_CheckUnexpectedStatus(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/check").
		Reply(http.StatusBadRequest).
		BodyString("bad body")

	c := New(serviceURL, 0)
	_, err := c.Check(context.Background(), newComment("text"))

	var statusErr *ErrStatus
	if !errors.As(err, &statusErr) {
		t.Fatalf("want *ErrStatus, got %v", err)
	}
	if statusErr.Code != http.StatusBadRequest {
		t.Errorf("want code %v, got %v", http.StatusBadRequest, statusErr.Code)
	}
}

func TestClient_Replace(t *testing.T) {
	defer gock.Off()

	comment := newComment("oh shit")
	censored := comment
	censored.Text = "oh ***"

	gock.New(serviceURL).
		Post("/replace").
		Reply(http.StatusOK).
		JSON(censored)

	c := New(serviceURL+"/", 0)
	got, err := c.Replace(context.Background(), comment)
	if err != nil {
		t.Fatalf("Replace unexpected error: %v", err)
	}
	if got.Text != "oh ***" {
		t.Errorf("want text %q, got %q", "oh ***", got.Text)
	}
	if got.PostID != comment.PostID {
		t.Errorf("want post_id %v, got %v", comment.PostID, got.PostID)
	}
}

func TestClient_Fix(t *testing.T) {
	defer gock.Off()

	fixed := newComment("Сейчас приду")
	gock.New(serviceURL).
		Post("/fix").
		Reply(http.StatusOK).
		JSON(fixed)

	c := New(serviceURL, 0)
	got, err := c.Fix(context.Background(), newComment("Щас приду"))
	if err != nil {
		t.Fatalf("Fix unexpected error: %v", err)
	}
	if got.Text != "Сейчас приду" {
		t.Errorf("want text %q, got %q", "Сейчас приду", got.Text)
	}
}

func TestClient_FixServerError(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/fix").
		Reply(http.StatusInternalServerError)

	c := New(serviceURL, 0)
	if _, err := c.Fix(context.Background(), newComment("text")); err == nil {
		t.Fatal("want error for 500 response")
	}
}
