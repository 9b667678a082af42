package models

// Follow is a directed edge: FollowerID receives FollowedID's messages.
// The composite primary key allows at most one edge per ordered pair.
type Follow struct {
	FollowedID uint64 `gorm:"column:user_being_followed_id;primaryKey;autoIncrement:false" json:"followed_id"`
	FollowerID uint64 `gorm:"column:user_following_id;primaryKey;autoIncrement:false;index" json:"follower_id"`

	// Relations
	Followed User `gorm:"foreignKey:FollowedID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Follower User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
