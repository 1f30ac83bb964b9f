package service

import "errors"

var (
	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidDriverName is returned when a new driver has no name.
	ErrInvalidDriverName = errors.New("driver name is required")

	// ErrInvalidVehicleNumber is returned when a new driver has no vehicle number.
	ErrInvalidVehicleNumber = errors.New("vehicle number is required")

	// ErrInvalidPaymentPreference is returned for a preference other than BATTA, SALARY or BOTH.
	ErrInvalidPaymentPreference = errors.New("invalid payment preference")

	// ErrInvalidPickupPoint is returned when pickup point is empty.
	ErrInvalidPickupPoint = errors.New("pickup point is required")

	// ErrInvalidDestination is returned when destination is empty.
	ErrInvalidDestination = errors.New("destination is required")

	// ErrInvalidAmount is returned when an amount is negative or not a finite number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidSettlementID is returned when settlement ID is empty.
	ErrInvalidSettlementID = errors.New("invalid settlement id")

	// ErrInvalidSettlementType is returned for a type filter other than BATTA or SALARY.
	ErrInvalidSettlementType = errors.New("invalid settlement type")

	// ErrInvalidSettlementStatus is returned for a status filter other than PENDING or PAID.
	ErrInvalidSettlementStatus = errors.New("invalid settlement status")

	// ErrSettlementAlreadyPaid is returned when settling a settlement that is already PAID.
	ErrSettlementAlreadyPaid = errors.New("settlement already paid")

	// ErrDriverBusy is returned when another write holds the driver's lock.
	ErrDriverBusy = errors.New("driver is being updated, retry")

	// ErrDriverHasPendingSettlements is returned when deleting a driver who is still owed money.
	ErrDriverHasPendingSettlements = errors.New("driver has pending settlements")
)
