package models

import "time"

// Comment is a remark attached to a task.
type Comment struct {
	ID        int64     `bson:"id" json:"id"`
	TaskID    int64     `bson:"task_id" json:"task_id"`
	AuthorID  int64     `bson:"author_id" json:"author_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
