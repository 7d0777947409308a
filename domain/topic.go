package domain

import (
	"regexp"
	"strings"
)

type TopicName string

const (
	DefaultTopic TopicName = "public"

	// TopicPrefix is the destination prefix clients see on broadcast frames.
	TopicPrefix = "/topic/"
)

var topicPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ParseTopic accepts a bare name ("public") or a destination ("/topic/public").
// An empty value resolves to DefaultTopic.
func ParseTopic(value string) (TopicName, bool) {
	name := strings.TrimPrefix(strings.TrimSpace(value), TopicPrefix)
	if name == "" {
		return DefaultTopic, true
	}
	if !topicPattern.MatchString(name) {
		return "", false
	}
	return TopicName(name), true
}

// ParseTopics splits a comma separated list, skipping invalid and duplicated names.
func ParseTopics(value string) []TopicName {
	var topics []TopicName
	seen := make(map[TopicName]struct{})
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		topic, ok := ParseTopic(part)
		if !ok {
			continue
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics
}

func (t TopicName) Destination() string {
	return TopicPrefix + string(t)
}
