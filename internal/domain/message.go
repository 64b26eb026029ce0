package domain

import "time"

// Message belongs to a (property, client) thread between the client and the
// property's agent.
type Message struct {
	MessageID  uint      `gorm:"column:message_id;primaryKey;autoIncrement" json:"message_id"`
	PropertyID uint      `gorm:"column:property_id;not null;index" json:"property_id"`
	ClientID   string    `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	AgentID    string    `gorm:"column:agent_id;type:uuid;not null" json:"agent_id"`
	SenderID   string    `gorm:"column:sender_id;type:uuid;not null" json:"sender_id"`
	Body       string    `gorm:"column:body;not null" json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Message) TableName() string {
	return "Messages"
}
