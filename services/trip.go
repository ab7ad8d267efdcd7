package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/utils"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrNotMember = errors.New("not a trip member")
	ErrNotOwner  = errors.New("not the trip owner")
)

type TripService struct {
	db *sql.DB
}

func NewTripService(db *sql.DB) *TripService {
	return &TripService{db: db}
}

// Create creates a trip with a fresh join code and adds the creator as its
// first member.
func (s *TripService) Create(ctx context.Context, name, creatorID string) (*models.Trip, error) {
	code, err := utils.GenerateJoinCode()
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		CreatedBy: creatorID,
		CreatedAt: time.Now(),
		IsOwner:   true,
	}

	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO trips (id, name, code, created_by)
			VALUES ($1, $2, $3, $4)
		`, trip.ID, trip.Name, trip.Code, trip.CreatedBy); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO trip_members (id, trip_id, user_id)
			VALUES ($1, $2, $3)
		`, uuid.New().String(), trip.ID, creatorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return trip, nil
}

// ListForUser returns the trips the user belongs to, newest first, with
// member counts.
func (s *TripService) ListForUser(ctx context.Context, userID string) ([]models.Trip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.code, t.created_by, t.is_archived, t.created_at,
		       (SELECT COUNT(*) FROM trip_members tm2 WHERE tm2.trip_id = t.id) AS member_count
		FROM trips t
		INNER JOIN trip_members tm ON t.id = tm.trip_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(&trip.ID, &trip.Name, &trip.Code, &trip.CreatedBy,
			&trip.IsArchived, &trip.CreatedAt, &trip.MemberCount); err != nil {
			return nil, err
		}
		trip.IsOwner = trip.CreatedBy == userID
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

// IsMember reports whether the user belongs to the trip.
func (s *TripService) IsMember(ctx context.Context, tripID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM trip_members
			WHERE trip_id = $1 AND user_id = $2
		)
	`, tripID, userID).Scan(&exists)
	return exists, err
}

// GetDetail returns the trip with its current members and sub-groups.
func (s *TripService) GetDetail(ctx context.Context, tripID, userID string) (*models.TripDetail, error) {
	isMember, err := s.IsMember(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	var trip models.Trip
	err = s.db.QueryRowContext(ctx, `
		SELECT id, name, code, created_by, is_archived, created_at
		FROM trips
		WHERE id = $1
	`, tripID).Scan(&trip.ID, &trip.Name, &trip.Code, &trip.CreatedBy, &trip.IsArchived, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	trip.IsOwner = trip.CreatedBy == userID

	members, err := s.ListMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}

	subGroups, err := s.ListSubGroups(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return &models.TripDetail{
		Trip:          trip,
		Members:       members,
		SubGroups:     subGroups,
		CurrentUserID: userID,
	}, nil
}

// ListMembers returns the trip's current membership.
func (s *TripService) ListMembers(ctx context.Context, tripID string) ([]models.TripMember, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tm.id, tm.trip_id, tm.user_id, COALESCE(u.display_name, ''), tm.joined_at
		FROM trip_members tm
		INNER JOIN users u ON tm.user_id = u.id
		WHERE tm.trip_id = $1
		ORDER BY tm.joined_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.TripMember{}
	for rows.Next() {
		var m models.TripMember
		if err := rows.Scan(&m.ID, &m.TripID, &m.UserID, &m.DisplayName, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListSubGroups returns the trip's sub-groups with their current members.
func (s *TripService) ListSubGroups(ctx context.Context, tripID string) ([]models.SubGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trip_id, name, created_at
		FROM sub_groups
		WHERE trip_id = $1
		ORDER BY created_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.SubGroup{}
	for rows.Next() {
		var g models.SubGroup
		if err := rows.Scan(&g.ID, &g.TripID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		memberRows, err := s.db.QueryContext(ctx, `
			SELECT sgm.user_id, COALESCE(u.display_name, '')
			FROM sub_group_members sgm
			INNER JOIN users u ON sgm.user_id = u.id
			WHERE sgm.sub_group_id = $1
			ORDER BY sgm.joined_at
		`, groups[i].ID)
		if err != nil {
			return nil, err
		}

		members := []models.SubGroupMember{}
		for memberRows.Next() {
			var m models.SubGroupMember
			if err := memberRows.Scan(&m.UserID, &m.DisplayName); err != nil {
				memberRows.Close()
				return nil, err
			}
			members = append(members, m)
		}
		memberRows.Close()
		if err := memberRows.Err(); err != nil {
			return nil, err
		}
		groups[i].Members = members
	}

	return groups, nil
}

// JoinByCode adds the user to the trip matching code. Joining twice is a
// no-op. When the trip has sub-groups and none was picked, the response
// asks the caller to choose one.
func (s *TripService) JoinByCode(ctx context.Context, code, subGroupID, userID string) (*models.JoinTripResponse, error) {
	var tripID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM trips WHERE code = $1
	`, strings.ToUpper(code)).Scan(&tripID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trip_members (id, trip_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id, user_id) DO NOTHING
	`, uuid.New().String(), tripID, userID)
	if err != nil {
		return nil, err
	}

	if subGroupID != "" {
		if err := s.JoinSubGroup(ctx, subGroupID, userID); err != nil {
			return nil, err
		}
		return &models.JoinTripResponse{Success: true, TripID: tripID}, nil
	}

	subGroups, err := s.ListSubGroups(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(subGroups) > 0 {
		return &models.JoinTripResponse{
			Success:                   true,
			TripID:                    tripID,
			RequiresSubGroupSelection: true,
			SubGroups:                 subGroups,
		}, nil
	}

	return &models.JoinTripResponse{Success: true, TripID: tripID}, nil
}

// CreateSubGroup adds a named sub-group to the trip.
func (s *TripService) CreateSubGroup(ctx context.Context, tripID, name string) (*models.SubGroup, error) {
	group := &models.SubGroup{
		ID:        uuid.New().String(),
		TripID:    tripID,
		Name:      name,
		CreatedAt: time.Now(),
		Members:   []models.SubGroupMember{},
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sub_groups (id, trip_id, name)
		VALUES ($1, $2, $3)
	`, group.ID, group.TripID, group.Name)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// JoinSubGroup adds the user to a sub-group, idempotently.
func (s *TripService) JoinSubGroup(ctx context.Context, subGroupID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sub_group_members (id, sub_group_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (sub_group_id, user_id) DO NOTHING
	`, uuid.New().String(), subGroupID, userID)
	return err
}

// LeaveSubGroup removes the user from a sub-group.
func (s *TripService) LeaveSubGroup(ctx context.Context, subGroupID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sub_group_members
		WHERE sub_group_id = $1 AND user_id = $2
	`, subGroupID, userID)
	return err
}

// RemoveMember kicks a member out of the trip and all of its sub-groups.
// Only the trip creator can do this, and not to themselves.
func (s *TripService) RemoveMember(ctx context.Context, tripID, requesterID, targetUserID string) error {
	var createdBy string
	err := s.db.QueryRowContext(ctx, `SELECT created_by FROM trips WHERE id = $1`, tripID).Scan(&createdBy)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if createdBy != requesterID {
		return ErrNotOwner
	}
	if targetUserID == requesterID {
		return errors.New("cannot remove yourself")
	}

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM sub_group_members
			WHERE user_id = $1
			  AND sub_group_id IN (SELECT id FROM sub_groups WHERE trip_id = $2)
		`, targetUserID, tripID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			DELETE FROM trip_members
			WHERE trip_id = $1 AND user_id = $2
		`, tripID, targetUserID)
		return err
	})
}

// SetArchived flips the trip's archive flag (owner only).
func (s *TripService) SetArchived(ctx context.Context, tripID, requesterID string, archived bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE trips
		SET is_archived = $1
		WHERE id = $2 AND created_by = $3
	`, archived, tripID, requesterID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotOwner
	}
	return nil
}
