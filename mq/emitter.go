package mq

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"auris/models"
	"auris/rdx"
)

const orderChannel = "order-events"

// EmitOrderConfirmed publishes an order event to redis. Publishing is
// best-effort: a failure is logged and checkout completion is unaffected.
func EmitOrderConfirmed(event models.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] failed to marshal order event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), orderChannel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish order event: %v", err)
		return
	}
	log.Printf("[Emit] order %s published to %q", event.OrderID, orderChannel)
}

// StartSalesWorker consumes order events and keeps rolling sales tallies
// in redis, per category and overall.
func StartSalesWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, orderChannel)
	ch := sub.Channel()

	log.Println("[SalesWorker] listening for order events...")

	for msg := range ch {
		var event models.OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[SalesWorker] failed to parse event: %v", err)
			continue
		}

		if err := rdx.RdxIncrBy("sales:orders", 1); err != nil {
			log.Printf("[SalesWorker] tally error: %v", err)
			continue
		}
		if err := rdx.RdxIncrBy("sales:revenue", int64(event.GrandTotal)); err != nil {
			log.Printf("[SalesWorker] revenue tally error: %v", err)
		}
		for _, category := range event.Categories {
			if err := rdx.RdxIncrBy("sales:category:"+category, 1); err != nil {
				log.Printf("[SalesWorker] category tally error: %v", err)
			}
		}
		log.Printf("[SalesWorker] order %s tallied, revenue +%s", event.OrderID, strconv.Itoa(event.GrandTotal))
	}
}
