package httpapi

import (
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/ranking"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	"github.com/riskibarqy/event-scoring/internal/usecase"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

type userDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type eventDTO struct {
	ID          int64     `json:"id"`
	CreatorID   int64     `json:"creator_id"`
	CreatorName string    `json:"creator_name,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type eventListDTO struct {
	Events []eventDTO `json:"events"`
}

type createdEventDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatorID   int64  `json:"creator_id"`
}

type eventDetailDTO struct {
	eventDTO
	Activities []activitySummaryDTO `json:"activities"`
}

type eventSummaryDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type activityDTO struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"event_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ActivityDate string    `json:"activity_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type activitySummaryDTO struct {
	activityDTO
	LeaderCount int `json:"leader_count"`
}

type categoryDTO struct {
	ID         int64   `json:"id"`
	ActivityID int64   `json:"activity_id"`
	Name       string  `json:"name"`
	MaxScore   float64 `json:"max_score"`
	Weight     float64 `json:"weight"`
}

type activityLeaderRefDTO struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type activityDetailDTO struct {
	activityDTO
	ScoreCategories []categoryDTO          `json:"score_categories"`
	Leaders         []activityLeaderRefDTO `json:"leaders"`
	Event           *eventSummaryDTO       `json:"event,omitempty"`
}

type leaderDTO struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	AssignedAt time.Time `json:"assigned_at"`
}

type assignedLeaderDTO struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type teamDTO struct {
	ID            int64     `json:"id"`
	EventID       int64     `json:"event_id"`
	Name          string    `json:"name"`
	CreatedBy     int64     `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type teamListDTO struct {
	Teams []teamDTO `json:"teams"`
}

type createdTeamDTO struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"event_id"`
	Name      string `json:"name"`
	CreatedBy int64  `json:"created_by"`
}

type scoreDTO struct {
	ID           int64     `json:"id"`
	ActivityID   int64     `json:"activity_id"`
	TeamID       int64     `json:"team_id"`
	CategoryID   int64     `json:"category_id"`
	ScoreValue   float64   `json:"score_value"`
	ScoredBy     int64     `json:"scored_by"`
	Notes        string    `json:"notes"`
	ScoredAt     time.Time `json:"scored_at"`
	TeamName     string    `json:"team_name"`
	CategoryName string    `json:"category_name"`
	ScoredByName string    `json:"scored_by_name"`
}

type submittedScoreDTO struct {
	ActivityID int64     `json:"activity_id"`
	TeamID     int64     `json:"team_id"`
	CategoryID int64     `json:"category_id"`
	ScoreValue float64   `json:"score_value"`
	Notes      string    `json:"notes"`
	ScoredBy   int64     `json:"scored_by"`
	ScoredAt   time.Time `json:"scored_at"`
}

type scoringSheetDTO struct {
	activityDTO
	EventName       string        `json:"event_name"`
	ScoreCategories []categoryDTO `json:"score_categories"`
	Teams           []teamDTO     `json:"teams"`
	Scores          []scoreDTO    `json:"scores"`
}

type teamStandingDTO struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	EventID             int64   `json:"event_id"`
	TotalScore          float64 `json:"total_score"`
	ActivitiesCompleted int     `json:"activities_completed"`
	MaxPossibleScore    float64 `json:"max_possible_score"`
	ScorePercentage     float64 `json:"score_percentage"`
}

type rankingLeaderDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rankingActivityDTO struct {
	activityDTO
	MaxPossibleScore  float64            `json:"max_possible_score"`
	TeamsParticipated int                `json:"teams_participated"`
	Leaders           []rankingLeaderDTO `json:"leaders"`
}

type rankingsDTO struct {
	Event            eventDTO             `json:"event"`
	TotalActivities  int                  `json:"total_activities"`
	TotalTeams       int                  `json:"total_teams"`
	Teams            []teamStandingDTO    `json:"teams"`
	MaxPossibleScore float64              `json:"max_possible_score"`
	Activities       []rankingActivityDTO `json:"activities"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func sessionToDTO(s usecase.Session) sessionDTO {
	return sessionDTO{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email, Token: s.Token}
}

func eventToDTO(e event.Event) eventDTO {
	return eventDTO{
		ID:          e.ID,
		CreatorID:   e.CreatorID,
		CreatorName: e.CreatorName,
		Name:        e.Name,
		Description: e.Description,
		StartDate:   formatDate(e.StartDate),
		EndDate:     formatDate(e.EndDate),
		CreatedAt:   e.CreatedAt,
	}
}

func eventToSummaryDTO(e event.Event) *eventSummaryDTO {
	return &eventSummaryDTO{
		ID:        e.ID,
		Name:      e.Name,
		StartDate: formatDate(e.StartDate),
		EndDate:   formatDate(e.EndDate),
	}
}

func eventDetailToDTO(d usecase.EventDetail) eventDetailDTO {
	out := eventDetailDTO{
		eventDTO:   eventToDTO(d.Event),
		Activities: make([]activitySummaryDTO, 0, len(d.Activities)),
	}
	for _, a := range d.Activities {
		out.Activities = append(out.Activities, activitySummaryDTO{
			activityDTO: activityToDTO(a.Activity),
			LeaderCount: a.LeaderCount,
		})
	}
	return out
}

func activityToDTO(a activity.Activity) activityDTO {
	return activityDTO{
		ID:           a.ID,
		EventID:      a.EventID,
		Name:         a.Name,
		Description:  a.Description,
		ActivityDate: formatDate(a.ActivityDate),
		CreatedAt:    a.CreatedAt,
	}
}

func categoriesToDTO(categories []activity.ScoreCategory) []categoryDTO {
	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryDTO{
			ID:         c.ID,
			ActivityID: c.ActivityID,
			Name:       c.Name,
			MaxScore:   c.MaxScore,
			Weight:     c.Weight,
		})
	}
	return out
}

// activityDetailToDTO attaches the parent event summary only when withEvent is set.
func activityDetailToDTO(d usecase.ActivityDetail, withEvent bool) activityDetailDTO {
	out := activityDetailDTO{
		activityDTO:     activityToDTO(d.Activity),
		ScoreCategories: categoriesToDTO(d.Categories),
		Leaders:         make([]activityLeaderRefDTO, 0, len(d.Leaders)),
	}
	for _, l := range d.Leaders {
		out.Leaders = append(out.Leaders, activityLeaderRefDTO{
			ID:     l.ID,
			UserID: l.UserID,
			Name:   l.UserName,
			Email:  l.UserEmail,
		})
	}
	if withEvent {
		out.Event = eventToSummaryDTO(d.Event)
	}
	return out
}

func leaderToDTO(a leader.Assignment) leaderDTO {
	return leaderDTO{
		ID:         a.ID,
		UserID:     a.UserID,
		Name:       a.UserName,
		Email:      a.UserEmail,
		AssignedAt: a.AssignedAt,
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:            t.ID,
		EventID:       t.EventID,
		Name:          t.Name,
		CreatedBy:     t.CreatedBy,
		CreatedByName: t.CreatedByName,
		CreatedAt:     t.CreatedAt,
	}
}

func teamsToDTO(teams []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	return out
}

func scoreToDTO(s score.Score) scoreDTO {
	return scoreDTO{
		ID:           s.ID,
		ActivityID:   s.ActivityID,
		TeamID:       s.TeamID,
		CategoryID:   s.CategoryID,
		ScoreValue:   s.Value,
		ScoredBy:     s.ScoredBy,
		Notes:        s.Notes,
		ScoredAt:     s.ScoredAt,
		TeamName:     s.TeamName,
		CategoryName: s.CategoryName,
		ScoredByName: s.ScoredByName,
	}
}

func scoringSheetToDTO(sheet usecase.ScoringSheet) scoringSheetDTO {
	out := scoringSheetDTO{
		activityDTO:     activityToDTO(sheet.Activity),
		EventName:       sheet.Event.Name,
		ScoreCategories: categoriesToDTO(sheet.Categories),
		Teams:           teamsToDTO(sheet.Teams),
		Scores:          make([]scoreDTO, 0, len(sheet.Scores)),
	}
	for _, s := range sheet.Scores {
		out.Scores = append(out.Scores, scoreToDTO(s))
	}
	return out
}

func rankingsToDTO(r usecase.Rankings) rankingsDTO {
	out := rankingsDTO{
		Event:            eventToDTO(r.Event),
		TotalActivities:  r.TotalActivities,
		TotalTeams:       r.TotalTeams,
		Teams:            make([]teamStandingDTO, 0, len(r.Board.Teams)),
		MaxPossibleScore: r.Board.MaxPossibleScore,
		Activities:       make([]rankingActivityDTO, 0, len(r.Board.Activities)),
	}
	for _, t := range r.Board.Teams {
		out.Teams = append(out.Teams, standingToDTO(t))
	}
	for _, a := range r.Board.Activities {
		leaders := make([]rankingLeaderDTO, 0, len(a.Leaders))
		for _, l := range a.Leaders {
			leaders = append(leaders, rankingLeaderDTO{ID: l.UserID, Name: l.Name})
		}
		out.Activities = append(out.Activities, rankingActivityDTO{
			activityDTO:       activityToDTO(a.Activity),
			MaxPossibleScore:  a.MaxPossibleScore,
			TeamsParticipated: a.TeamsParticipated,
			Leaders:           leaders,
		})
	}
	return out
}

func standingToDTO(t ranking.TeamStanding) teamStandingDTO {
	return teamStandingDTO{
		ID:                  t.TeamID,
		Name:                t.Name,
		EventID:             t.EventID,
		TotalScore:          t.TotalScore,
		ActivitiesCompleted: t.ActivitiesCompleted,
		MaxPossibleScore:    t.MaxPossibleScore,
		ScorePercentage:     t.ScorePercentage,
	}
}
