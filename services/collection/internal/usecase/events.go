package usecase

import (
	"time"

	"collection-hub/pkg/logger"
)

// EventPublisher delivers workflow events after commit. *queue.Client
// implements it.
type EventPublisher interface {
	PublishCollectionEvent(routingKey string, event map[string]interface{}) error
}

func publishEvent(publisher EventPublisher, log *logger.Logger, routingKey string, event map[string]interface{}) {
	if publisher == nil {
		return
	}
	event["event"] = routingKey
	event["timestamp"] = time.Now().Unix()

	go func() {
		if err := publisher.PublishCollectionEvent(routingKey, event); err != nil {
			log.Error("[EVENTS] Failed to publish %s: %v (id=%v)", routingKey, err, event["id"])
			return
		}
		log.Info("[EVENTS] Published %s (id=%v)", routingKey, event["id"])
	}()
}
