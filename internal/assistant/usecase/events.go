package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/intent"
	"workspace-assistant/pkg/datemath"
	"workspace-assistant/pkg/gcalendar"
)

// handleListEvents answers "what's on my calendar" style requests.
func (uc *implUseCase) handleListEvents(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	startExpr := firstNonEmpty(d.StartExpr, datemath.KeywordToday)
	endExpr := firstNonEmpty(d.EndExpr, startExpr)

	rng, err := uc.dateMath.ResolveRange(startExpr, endExpr, time.Now())
	if err != nil {
		uc.l.Warnf(ctx, "%s: date resolution failed: %v", LogPrefixProcess, err)
		return errorOutput(session, fmt.Sprintf("I couldn't work out the dates in that request (%s).", startExpr)), nil
	}

	events, err := uc.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: uc.calendarID,
		TimeMin:    rng.Start,
		TimeMax:    rng.End,
		MaxResults: maxSearchResults,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: calendar list failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't reach your calendar just now."), nil
	}

	if len(events) == 0 {
		if startExpr == datemath.KeywordToday && endExpr == datemath.KeywordToday {
			return textOutput(session, MsgNoEventsToday), nil
		}
		return textOutput(session, MsgNoEventsInRange), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %d event(s):\n", len(events))
	for _, e := range events {
		sb.WriteString(formatEventLine(e) + "\n")
	}

	if len(events) == 1 {
		session.LastEventID = events[0].ID
	}
	return textOutput(session, strings.TrimRight(sb.String(), "\n")), nil
}

// handleFindEvent looks up one specific event by description.
func (uc *implUseCase) handleFindEvent(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	event, out, done := uc.findOneEvent(ctx, session, message, d)
	if done {
		return out, nil
	}

	session.LastEventID = event.ID
	text := fmt.Sprintf("Found it: %s", formatEventLine(*event)[2:])
	if event.Location != "" {
		text += fmt.Sprintf(", at %s", event.Location)
	}
	return textOutput(session, text), nil
}

// handleCreateEvent schedules a new event.
func (uc *implUseCase) handleCreateEvent(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	if d.Title == "" || d.StartExpr == "" {
		return textOutput(session, MsgAskEventTitle), nil
	}

	start, err := uc.dateMath.Parse(d.StartExpr, time.Now())
	if err != nil {
		return errorOutput(session, fmt.Sprintf("I couldn't work out when %q is.", d.StartExpr)), nil
	}

	end := start.Add(defaultEventHrs * time.Hour)
	if d.EndExpr != "" {
		parsed, err := uc.dateMath.Parse(d.EndExpr, time.Now())
		if err != nil {
			return errorOutput(session, fmt.Sprintf("I couldn't work out when %q is.", d.EndExpr)), nil
		}
		if parsed.After(start) {
			end = parsed
		}
	}

	created, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID: uc.calendarID,
		Summary:    d.Title,
		StartTime:  start,
		EndTime:    end,
		Timezone:   uc.timezone,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: calendar create failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't create the event."), nil
	}

	session.LastEventID = created.ID
	return textOutput(session, fmt.Sprintf("Scheduled %q for %s.", created.Summary, start.Format("Mon Jan 2 15:04"))), nil
}

// handleUpdateEvent changes an existing event. When the request names the
// event but not the change, the turn suspends with a pending action.
func (uc *implUseCase) handleUpdateEvent(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	event, out, done := uc.findOneEvent(ctx, session, message, d)
	if done {
		return out, nil
	}

	if d.StartExpr == "" && d.Title == "" && d.Instruction == "" {
		session.PendingAction = assistant.PendingEventUpdate
		session.LastEventID = event.ID
		return textOutput(session, fmt.Sprintf("Found %q. %s", event.Summary, MsgAskEventChange)), nil
	}

	return uc.applyEventUpdate(ctx, session, event.ID, d)
}

// applyEventUpdate performs the actual patch once the target event is known.
// Also the resume point for the awaiting_event_update pending action.
func (uc *implUseCase) applyEventUpdate(ctx context.Context, session assistant.SessionState, eventID string, d intent.Details) (assistant.ProcessOutput, error) {
	if eventID == "" {
		return errorOutput(session, MsgNoEventsInRange), nil
	}

	req := gcalendar.UpdateEventRequest{
		CalendarID: uc.calendarID,
		EventID:    eventID,
		Summary:    d.Title,
		Timezone:   uc.timezone,
	}

	if d.StartExpr != "" {
		start, err := uc.dateMath.Parse(d.StartExpr, time.Now())
		if err != nil {
			return errorOutput(session, fmt.Sprintf("I couldn't work out when %q is.", d.StartExpr)), nil
		}
		req.StartTime = start
		req.EndTime = start.Add(defaultEventHrs * time.Hour)
		if d.EndExpr != "" {
			if end, err := uc.dateMath.Parse(d.EndExpr, time.Now()); err == nil && end.After(start) {
				req.EndTime = end
			}
		}
	}

	if req.Summary == "" && req.StartTime.IsZero() {
		// Nothing concrete to change; ask again rather than patch nothing.
		session.PendingAction = assistant.PendingEventUpdate
		session.LastEventID = eventID
		return textOutput(session, MsgAskEventChange), nil
	}

	updated, err := uc.calendar.UpdateEvent(ctx, req)
	if err != nil {
		uc.l.Errorf(ctx, "%s: calendar update failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't update the event."), nil
	}

	session.LastEventID = updated.ID
	text := fmt.Sprintf("Updated %q.", updated.Summary)
	if !req.StartTime.IsZero() {
		text = fmt.Sprintf("Updated %q, now %s.", updated.Summary, req.StartTime.Format("Mon Jan 2 15:04"))
	}
	return textOutput(session, text), nil
}

// handleDeleteEvent removes an event after resolving which one.
func (uc *implUseCase) handleDeleteEvent(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	event, out, done := uc.findOneEvent(ctx, session, message, d)
	if done {
		return out, nil
	}

	if err := uc.calendar.DeleteEvent(ctx, uc.calendarID, event.ID); err != nil {
		uc.l.Errorf(ctx, "%s: calendar delete failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't delete the event."), nil
	}

	if session.LastEventID == event.ID {
		session.LastEventID = ""
	}
	return textOutput(session, fmt.Sprintf("Deleted %q.", event.Summary)), nil
}

// findOneEvent searches the calendar and disambiguates down to one event.
// done=true means the returned output should be sent as is (no match, or the
// user needs to pick from a list).
func (uc *implUseCase) findOneEvent(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (*gcalendar.Event, assistant.ProcessOutput, bool) {
	// No query but a remembered event means "the one we just talked about".
	if d.Query == "" && session.LastEventID != "" {
		event, err := uc.calendar.GetEvent(ctx, uc.calendarID, session.LastEventID)
		if err == nil {
			return event, assistant.ProcessOutput{}, false
		}
		uc.l.Warnf(ctx, "%s: remembered event %s gone: %v", LogPrefixProcess, session.LastEventID, err)
	}

	startExpr := firstNonEmpty(d.StartExpr, datemath.KeywordOneMonthAgo)
	endExpr := firstNonEmpty(d.EndExpr, datemath.KeywordEndOfYear)
	rng, err := uc.dateMath.ResolveRange(startExpr, endExpr, time.Now())
	if err != nil {
		return nil, errorOutput(session, "I couldn't work out the dates in that request."), true
	}

	events, err := uc.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: uc.calendarID,
		Query:      d.Query,
		TimeMin:    rng.Start,
		TimeMax:    rng.End,
		MaxResults: maxSearchResults,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: calendar search failed: %v", LogPrefixProcess, err)
		return nil, errorOutput(session, "I couldn't reach your calendar just now."), true
	}
	if len(events) == 0 {
		return nil, textOutput(session, MsgNoEventsInRange), true
	}

	candidates := make([]Candidate, 0, len(events))
	for _, e := range events {
		when := ""
		if !e.StartTime.IsZero() {
			when = e.StartTime.Format(time.RFC3339)
		}
		candidates = append(candidates, Candidate{ID: e.ID, Label: e.Summary, When: when})
	}

	id, ok := uc.resolveCandidate(ctx, message, candidates)
	if !ok {
		text := MsgBeMoreSpecific + "\n" + candidateListing(candidates)
		return nil, textOutput(session, text), true
	}

	for i := range events {
		if events[i].ID == id {
			return &events[i], assistant.ProcessOutput{}, false
		}
	}
	return nil, textOutput(session, MsgNoEventsInRange), true
}
