package dbmysql

import (
	"time"
)

// Forum is a post on the public forum feed.
type Forum struct {
	ForumID   uint64    `gorm:"primaryKey;column:forum_id;autoIncrement" json:"forum_id"`
	UserID    uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	Caption   string    `gorm:"column:caption;type:text" json:"caption"`
	PhotoRef  *string   `gorm:"column:photo_ref;size:64" json:"photo_ref,omitempty"`
	Likes     int64     `gorm:"column:likes;default:0" json:"likes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type Comment struct {
	CommentID uint64    `gorm:"primaryKey;column:comment_id;autoIncrement" json:"comment_id"`
	ForumID   uint64    `gorm:"column:forum_id;index;not null" json:"forum_id"`
	UserID    uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type Like struct {
	LikeID    uint64    `gorm:"primaryKey;column:like_id;autoIncrement" json:"like_id"`
	ForumID   uint64    `gorm:"column:forum_id;index;not null" json:"forum_id"`
	UserID    uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
