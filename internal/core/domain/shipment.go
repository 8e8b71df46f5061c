package domain

// TrackingID is an opaque token identifying a shipment. It is issued once
// per ship-order call and never stored by this service.
type TrackingID string
