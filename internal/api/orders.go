package api

import "context"

// --- Order Methods ---

// AssignCourier calls PUT /orders/{id}/assign.
func (c *Client) AssignCourier(ctx context.Context, orderID, courierID string) (*Order, error) {
	input := AssignCourierInput{CourierID: courierID}
	if errs := Validate(input); len(errs) > 0 {
		return nil, errs
	}
	data, err := c.put(ctx, resourcePath("orders", orderID, "assign"), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Order](data)
}
