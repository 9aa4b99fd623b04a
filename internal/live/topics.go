package live

import "strings"

// Topic names. Each topic mirrors one backend collection or settings
// document; subscribers receive full-snapshot replacements of it.
const (
	TopicMembers         = "members"
	TopicJoinRequests    = "join_requests"
	TopicAttendance      = "attendance"
	TopicBoardCategories = "board_categories"

	boardTopicPrefix    = "board:"
	settingsTopicPrefix = "settings:"
)

// TopicBoard returns the topic of one board's post stream
func TopicBoard(categoryID string) string {
	return boardTopicPrefix + categoryID
}

// TopicSettings returns the topic of one settings document
func TopicSettings(name string) string {
	return settingsTopicPrefix + name
}

// BoardTopicID extracts the category id from a board topic ("" if not one)
func BoardTopicID(topic string) string {
	return strings.TrimPrefix(topic, boardTopicPrefix)
}

// SettingsTopicName extracts the document name from a settings topic
func SettingsTopicName(topic string) string {
	return strings.TrimPrefix(topic, settingsTopicPrefix)
}

// IsBoardTopic reports whether topic is a per-board post stream
func IsBoardTopic(topic string) bool {
	return strings.HasPrefix(topic, boardTopicPrefix)
}

// IsSettingsTopic reports whether topic mirrors a settings document
func IsSettingsTopic(topic string) bool {
	return strings.HasPrefix(topic, settingsTopicPrefix)
}
