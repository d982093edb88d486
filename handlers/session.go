package handlers

import (
	"encoding/json"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// MessageRequest is the body of a chat message post
type MessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse carries the assistant's reply for one message
type MessageResponse struct {
	Reply string `json:"reply"`
}

func listSessionsHandler(c rweb.Context) error {
	sessions, err := deps.Sessions.ListSessions()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to list sessions"), 500)
	}
	return c.WriteJSON(sessions)
}

func createSessionHandler(c rweb.Context) error {
	var req struct {
		Title string `json:"title"`
	}
	if body := c.Request().Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return c.WriteError(serr.Wrap(err, "invalid request body"), 400)
		}
	}
	if req.Title == "" {
		req.Title = "New Chat"
	}

	session, err := deps.Sessions.CreateSession(req.Title)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to create session"), 500)
	}

	logger.F("Created new session: %s", session.ID)
	return c.WriteJSON(session)
}

func deleteSessionHandler(c rweb.Context) error {
	sessionID := c.Request().Param("id")

	if err := deps.Sessions.DeleteSession(sessionID); err != nil {
		return c.WriteError(serr.Wrap(err, "failed to delete session"), 500)
	}
	return c.WriteJSON(map[string]bool{"success": true})
}

// chatHandler routes one user message through the orchestrator and records
// both sides of the exchange on the session transcript
func chatHandler(c rweb.Context) error {
	sessionID := c.Request().Param("id")

	body := c.Request().Body()
	var req MessageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.WriteError(serr.Wrap(err, "invalid request body"), 400)
	}
	if req.Content == "" {
		return c.WriteError(serr.New("message content is required"), 400)
	}

	session, err := deps.Sessions.GetSession(sessionID)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get session"), 500)
	}
	if session == nil {
		return c.WriteError(serr.New("session not found"), 404)
	}

	if err := deps.Sessions.AddMessage(sessionID, "user", req.Content); err != nil {
		logger.LogErr(err, "failed to record user message")
	}

	reply := deps.Orchestrator.HandleMessage(sessionID, req.Content)

	if err := deps.Sessions.AddMessage(sessionID, "assistant", reply); err != nil {
		logger.LogErr(err, "failed to record assistant message")
	}

	return c.WriteJSON(MessageResponse{Reply: reply})
}

func getSessionMessagesHandler(c rweb.Context) error {
	sessionID := c.Request().Param("id")

	messages, err := deps.Sessions.GetMessages(sessionID)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get messages"), 500)
	}
	return c.WriteJSON(messages)
}
