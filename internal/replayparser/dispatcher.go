package replayparser

import (
	"sort"

	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/statistics"
	"github.com/wal-g/tracelog"
)

// resolveEvents decrypts every event in time order and hands it to the handler registered for its tags.
// Events are never compressed. Replay.Events keeps the order of the chunks.
func (session *parseSession) resolveEvents(ar *archive.Archive) {
	events := append([]Event(nil), session.replay.Events...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime < events[j].StartTime
	})
	for _, event := range events {
		if err := ar.Seek(event.Offset); err != nil {
			session.eventFailed(event, err)
			continue
		}
		payload, err := session.decrypt(ar, int(event.Length))
		if err != nil {
			session.eventFailed(event, err)
			continue
		}
		session.dispatchEvent(payload, event)
	}
}

func (session *parseSession) dispatchEvent(ar *archive.Archive, event Event) {
	handler, ok := session.reader.eventHandlers[event.Key()]
	if !ok {
		tracelog.InfoLogger.Printf("No handler for event %s with group %q and metadata %q\n",
			event.ID, event.Group, event.Metadata)
		statistics.UreplayMetrics.UnknownEventsTotal.WithLabelValues(event.Group).Inc()
		return
	}

	value, err := invokeEventHandler(handler, ar, event)
	if err != nil {
		session.eventFailed(event, err)
		return
	}
	if !ar.AtEnd() {
		tracelog.WarningLogger.Printf("EventNotFullyConsumed: %d of %d bytes left in event with group %q and metadata %q\n",
			ar.Remaining(), ar.Len(), event.Group, event.Metadata)
		statistics.UreplayMetrics.UnconsumedEventsTotal.WithLabelValues(event.Group).Inc()
	}
	if value != nil {
		session.replay.Records = append(session.replay.Records, Record{Event: event, Value: value})
	}
}

func invokeEventHandler(handler EventHandler, ar *archive.Archive, event Event) (value interface{}, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value, err = nil, NewEventHandlerPanicError(event.Key(), recovered)
		}
	}()
	return handler.HandleEvent(ar, event)
}

func (session *parseSession) eventFailed(event Event, err error) {
	tracelog.ErrorLogger.Printf("Failed to handle event with group %q, metadata %q, start time %d: %v\n",
		event.Group, event.Metadata, event.StartTime, err)
	statistics.UreplayMetrics.EventHandlerFailuresTotal.WithLabelValues(event.Group).Inc()
}

// resolveCheckpoints hands every checkpoint to the checkpoint handler, if one is configured.
func (session *parseSession) resolveCheckpoints(ar *archive.Archive) {
	handler := session.reader.checkpointHandler
	if handler == nil || session.replay.Header == nil {
		return
	}
	for _, checkpoint := range session.replay.Checkpoints {
		payload, err := session.resolve(ar, checkpoint.Offset, int(checkpoint.Length))
		if err == nil {
			err = handler.HandleCheckpoint(payload, checkpoint)
		}
		if err != nil {
			tracelog.ErrorLogger.Printf("Failed to decode checkpoint %s at offset %d: %v\n",
				checkpoint.ID, checkpoint.Offset, err)
			statistics.UreplayMetrics.CheckpointFailuresTotal.Inc()
		}
	}
}

// resolveDataBlocks walks the frames of every data block. A failing block does not stop the others.
func (session *parseSession) resolveDataBlocks(ar *archive.Archive) {
	if session.reader.skipDataBlocks || session.replay.Header == nil {
		return
	}
	for _, block := range session.replay.DataBlocks {
		before := session.walker.Summary()
		payload, err := session.resolve(ar, block.Offset, int(block.CompressedLength))
		if err == nil {
			err = session.walker.WalkBlock(payload)
		}
		if err != nil {
			tracelog.ErrorLogger.Printf("Failed to decode data block at offset %d (%d-%d ms): %v\n",
				block.Offset, block.StartTime, block.EndTime, err)
			statistics.UreplayMetrics.DataBlockFailuresTotal.Inc()
			continue
		}
		after := session.walker.Summary()
		if after.CorruptBlocks > before.CorruptBlocks {
			statistics.UreplayMetrics.CorruptDataBlocksTotal.Inc()
		}
		statistics.UreplayMetrics.PacketsTotal.Add(float64(after.Packets - before.Packets))
	}
}
