package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// 消息 ID 生成器。server / scheduler / worker 各占一个 machineID，
// 保证三个进程发出的消息 ID 不会撞车。
var (
	node *snowflake.Node
	once sync.Once
)

var (
	errNodeIDRange    = errors.New("snowflake machine/datacenter id out of range (0~31)")
	errNotInitialized = errors.New("snowflake node not initialized")
)

func Init(machineID, dataCenterID int64) error {
	var initErr error

	once.Do(func() {
		if machineID < 0 || machineID > 31 || dataCenterID < 0 || dataCenterID > 31 {
			initErr = errNodeIDRange
			return
		}
		node, initErr = snowflake.NewNode(dataCenterID<<5 | machineID)
	})

	return initErr
}

func NextID() (int64, error) {
	if node == nil {
		return 0, errNotInitialized
	}

	return node.Generate().Int64(), nil
}
