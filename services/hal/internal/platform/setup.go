package platform

import "mlxio-go/services/hal/internal/platform/boards"

// SelectedBoard returns the board compiled into this firmware image.
// Build with -tags board_stm32f4disco to target the Discovery kit.
func SelectedBoard() *boards.Board { return selectedBoard() }
