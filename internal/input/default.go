package input

import (
	"encoding/binary"
	"log"
	"os"
	"syscall"
)

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Event is a raw key transition. Unlike terminal input this
// carries releases, which hold notes need.
type Event struct {
	Pressed  bool
	Released bool
	//https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
	Code uint16
	Time syscall.Timeval
}

// Values from <linux/input-event-codes.h>.
const (
	keyD  = 32
	keyF  = 33
	keyJ  = 36
	keyK  = 37
	evKey = 0x01
)

// Default evdev codes for the d f j k lane keys.
var laneCodes = map[uint16]int{
	keyD: 0,
	keyF: 1,
	keyJ: 2,
	keyK: 3,
}

// Lane maps a key code to its lane, -1 when the key is not bound.
func Lane(code uint16) int {
	lane, ok := laneCodes[code]
	if !ok {
		return -1
	}
	return lane
}

// ReadInput streams key transitions from a raw input device into
// the channel until the device goes away.
func ReadInput(kbd string, events chan *Event) error {
	file, err := os.Open(kbd)
	if err != nil {
		return err
	}
	go func() {
		defer file.Close()

		var ev keyEvent
		for {
			err = binary.Read(file, binary.LittleEndian, &ev)
			if nil != err {
				log.Println(err, "unable to read keyboard input")
				return
			}
			if ev.Type != evKey {
				continue
			}
			events <- &Event{
				Pressed:  ev.Value == 1,
				Released: ev.Value == 0,
				Code:     ev.Code,
				Time:     ev.Time,
			}
		}
	}()
	return nil
}
