package service

import "errors"

// Sentinel errors returned by services. The HTTP layer maps each one to a
// status code and a machine readable code.
var (
	ErrIDRequired = errors.New("id is required")
	ErrForbidden  = errors.New("not allowed to access this resource")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
	ErrInvalidRole        = errors.New("role must be one of customer, staff, admin")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")

	ErrRestaurantNotFound    = errors.New("restaurant not found")
	ErrInvalidRegion         = errors.New("region must be one of north, central, south")
	ErrRestaurantNotInRegion = errors.New("restaurant is not in the requested region")

	ErrTableNotFound        = errors.New("table not found")
	ErrTableNumberTaken     = errors.New("table number already exists in this restaurant")
	ErrTableNotInRestaurant = errors.New("table does not belong to this restaurant")
	ErrTableInMaintenance   = errors.New("table is under maintenance")
	ErrTableTooSmall        = errors.New("table capacity is smaller than the party")
	ErrTableBooked          = errors.New("table already booked at this time")
	ErrTableBlocked         = errors.New("table is blocked at this time")
	ErrTableHasBookings     = errors.New("table has active bookings")
	ErrManualTableStatus    = errors.New("status can only be set to available or maintenance")
	ErrBlockNotFound        = errors.New("table block not found")
	ErrBlockExists          = errors.New("table is already blocked at this time")

	ErrBookingNotFound    = errors.New("booking not found")
	ErrPartySize          = errors.New("party must have at least one guest")
	ErrTableRequired      = errors.New("assign a table before confirming")
	ErrBookingNotEditable = errors.New("booking can no longer be changed")
	ErrStatusChanged      = errors.New("status was changed by another request, reload and retry")

	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrCartItemNotFound = errors.New("item is not in the cart")
	ErrCartEmpty        = errors.New("cart is empty")

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotCompleted = errors.New("invoice can only be issued for a completed order")

	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrRecipientRequired = errors.New("recipient email required")
	ErrMailDelivery      = errors.New("email could not be delivered")

	ErrFeedbackNotFound   = errors.New("feedback not found")
	ErrFeedbackExists     = errors.New("feedback already submitted")
	ErrBookingNotFinished = errors.New("feedback requires a completed booking")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")

	ErrRestaurantRequired = errors.New("restaurantId is required")
	ErrInvalidRange       = errors.New("invalid date range")

	ErrReaderNil       = errors.New("reader is nil")
	ErrNotAnImage      = errors.New("only image uploads are allowed")
	ErrImageTooLarge   = errors.New("image exceeds the upload limit")
	ErrInvalidPublicID = errors.New("invalid image id")
	ErrImageNotFound   = errors.New("image not found")
)
