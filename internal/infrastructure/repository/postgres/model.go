package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

// Unique constraint names from db/migrations.
const (
	usersEmailKey          = "users_email_lower_key"
	teamsEventNameKey      = "teams_event_id_name_key"
	activityLeadersPairKey = "activity_leaders_activity_id_user_id_key"
)

const dateLayout = "2006-01-02"

// dateOnly renders a calendar date for a DATE column.
func dateOnly(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

type userTableModel struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type userInsertModel struct {
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

type eventTableModel struct {
	ID          int64          `db:"id"`
	CreatorID   int64          `db:"creator_id"`
	CreatorName sql.NullString `db:"creator_name"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     time.Time      `db:"end_date"`
	CreatedAt   time.Time      `db:"created_at"`
}

type eventInsertModel struct {
	CreatorID   int64  `db:"creator_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	StartDate   string `db:"start_date"`
	EndDate     string `db:"end_date"`
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{
		ID:          m.ID,
		CreatorID:   m.CreatorID,
		CreatorName: m.CreatorName.String,
		Name:        m.Name,
		Description: m.Description,
		StartDate:   m.StartDate.UTC(),
		EndDate:     m.EndDate.UTC(),
		CreatedAt:   m.CreatedAt,
	}
}

type activityTableModel struct {
	ID           int64     `db:"id"`
	EventID      int64     `db:"event_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	ActivityDate time.Time `db:"activity_date"`
	CreatedAt    time.Time `db:"created_at"`
}

type activityInsertModel struct {
	EventID      int64  `db:"event_id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	ActivityDate string `db:"activity_date"`
}

func (m activityTableModel) toDomain() activity.Activity {
	return activity.Activity{
		ID:           m.ID,
		EventID:      m.EventID,
		Name:         m.Name,
		Description:  m.Description,
		ActivityDate: m.ActivityDate.UTC(),
		CreatedAt:    m.CreatedAt,
	}
}

type categoryTableModel struct {
	ID         int64   `db:"id"`
	ActivityID int64   `db:"activity_id"`
	Name       string  `db:"name"`
	MaxScore   float64 `db:"max_score"`
	Weight     float64 `db:"weight"`
}

type categoryInsertModel struct {
	ActivityID int64   `db:"activity_id"`
	Name       string  `db:"name"`
	MaxScore   float64 `db:"max_score"`
	Weight     float64 `db:"weight"`
}

func (m categoryTableModel) toDomain() activity.ScoreCategory {
	return activity.ScoreCategory{
		ID:         m.ID,
		ActivityID: m.ActivityID,
		Name:       m.Name,
		MaxScore:   m.MaxScore,
		Weight:     m.Weight,
	}
}

type leaderTableModel struct {
	ID         int64          `db:"id"`
	ActivityID int64          `db:"activity_id"`
	UserID     int64          `db:"user_id"`
	AssignedBy int64          `db:"assigned_by"`
	AssignedAt time.Time      `db:"assigned_at"`
	UserName   sql.NullString `db:"user_name"`
	UserEmail  sql.NullString `db:"user_email"`
}

type leaderInsertModel struct {
	ActivityID int64 `db:"activity_id"`
	UserID     int64 `db:"user_id"`
	AssignedBy int64 `db:"assigned_by"`
}

func (m leaderTableModel) toDomain() leader.Assignment {
	return leader.Assignment{
		ID:         m.ID,
		ActivityID: m.ActivityID,
		UserID:     m.UserID,
		AssignedBy: m.AssignedBy,
		AssignedAt: m.AssignedAt,
		UserName:   m.UserName.String,
		UserEmail:  m.UserEmail.String,
	}
}

type teamTableModel struct {
	ID            int64          `db:"id"`
	EventID       int64          `db:"event_id"`
	Name          string         `db:"name"`
	CreatedBy     int64          `db:"created_by"`
	CreatedByName sql.NullString `db:"created_by_name"`
	CreatedAt     time.Time      `db:"created_at"`
}

type teamInsertModel struct {
	EventID   int64  `db:"event_id"`
	Name      string `db:"name"`
	CreatedBy int64  `db:"created_by"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:            m.ID,
		EventID:       m.EventID,
		Name:          m.Name,
		CreatedBy:     m.CreatedBy,
		CreatedByName: m.CreatedByName.String,
		CreatedAt:     m.CreatedAt,
	}
}

type scoreTableModel struct {
	ID           int64          `db:"id"`
	ActivityID   int64          `db:"activity_id"`
	TeamID       int64          `db:"team_id"`
	CategoryID   int64          `db:"category_id"`
	Value        float64        `db:"score_value"`
	ScoredBy     int64          `db:"scored_by"`
	Notes        string         `db:"notes"`
	ScoredAt     time.Time      `db:"scored_at"`
	TeamName     sql.NullString `db:"team_name"`
	CategoryName sql.NullString `db:"category_name"`
	ScoredByName sql.NullString `db:"scored_by_name"`
}

type scoreInsertModel struct {
	ActivityID int64     `db:"activity_id"`
	TeamID     int64     `db:"team_id"`
	CategoryID int64     `db:"category_id"`
	Value      float64   `db:"score_value"`
	ScoredBy   int64     `db:"scored_by"`
	Notes      string    `db:"notes"`
	ScoredAt   time.Time `db:"scored_at"`
}

func (m scoreTableModel) toDomain() score.Score {
	return score.Score{
		ID:           m.ID,
		ActivityID:   m.ActivityID,
		TeamID:       m.TeamID,
		CategoryID:   m.CategoryID,
		Value:        m.Value,
		ScoredBy:     m.ScoredBy,
		Notes:        m.Notes,
		ScoredAt:     m.ScoredAt,
		TeamName:     m.TeamName.String,
		CategoryName: m.CategoryName.String,
		ScoredByName: m.ScoredByName.String,
	}
}
