//go:build !board_stm32f4disco

package platform

import "mlxio-go/services/hal/internal/platform/boards"

func selectedBoard() *boards.Board { return boards.MelexisIO }
