package entity

import "time"

// FollowAction is the requested change to a follow edge.
type FollowAction string

const (
	ActionFollow   FollowAction = "follow"
	ActionUnfollow FollowAction = "unfollow"
)

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}
