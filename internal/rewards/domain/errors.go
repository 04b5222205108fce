package domain

//region ReceiverNotFoundError

type ReceiverNotFoundError struct {
	Msg string
}

func (e *ReceiverNotFoundError) Error() string {
	if e.Msg == "" {
		return "receiver not found"
	}

	return e.Msg
}

func (e *ReceiverNotFoundError) Is(target error) bool {
	_, ok := target.(*ReceiverNotFoundError)
	return ok
}

//endregion

//region SelfTransferError

type SelfTransferError struct {
	Msg string
}

func (e *SelfTransferError) Error() string {
	if e.Msg == "" {
		return "you cannot send points to yourself"
	}

	return e.Msg
}

func (e *SelfTransferError) Is(target error) bool {
	_, ok := target.(*SelfTransferError)
	return ok
}

//endregion

//region BelowMinimumError

type BelowMinimumError struct {
	Msg string
}

func (e *BelowMinimumError) Error() string {
	if e.Msg == "" {
		return "transfer amount is below the minimum"
	}

	return e.Msg
}

func (e *BelowMinimumError) Is(target error) bool {
	_, ok := target.(*BelowMinimumError)
	return ok
}

//endregion

//region InsufficientBalanceError

type InsufficientBalanceError struct {
	Msg string
}

func (e *InsufficientBalanceError) Error() string {
	if e.Msg == "" {
		return "insufficient points balance"
	}

	return e.Msg
}

func (e *InsufficientBalanceError) Is(target error) bool {
	_, ok := target.(*InsufficientBalanceError)
	return ok
}

//endregion

//region InvalidMaterialError

type InvalidMaterialError struct {
	Msg string
}

func (e *InvalidMaterialError) Error() string {
	if e.Msg == "" {
		return "unknown material type"
	}

	return e.Msg
}

func (e *InvalidMaterialError) Is(target error) bool {
	_, ok := target.(*InvalidMaterialError)
	return ok
}

//endregion

//region InvalidPointsError

type InvalidPointsError struct {
	Msg string
}

func (e *InvalidPointsError) Error() string {
	if e.Msg == "" {
		return "points must be a positive integer"
	}

	return e.Msg
}

func (e *InvalidPointsError) Is(target error) bool {
	_, ok := target.(*InvalidPointsError)
	return ok
}

//endregion

//region UserNotFoundError

type UserNotFoundError struct {
	Msg string
}

func (e *UserNotFoundError) Error() string {
	if e.Msg == "" {
		return "user not found"
	}

	return e.Msg
}

func (e *UserNotFoundError) Is(target error) bool {
	_, ok := target.(*UserNotFoundError)
	return ok
}

//endregion
