package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"rendezvous_server/models"
	"rendezvous_server/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/charmbracelet/log"
)

var _ Store = (*DynamoStore)(nil)

// appointmentItem is one participant's index entry for an appointment. Each
// appointment is written twice, once under each participant.
type appointmentItem struct {
	PartyID       string `dynamodbav:"partyId"` // Partition Key
	SK            string `dynamodbav:"SK"`      // Sort Key: "APPT#<date>#<startTime>#<appointmentId>"
	AppointmentID string `dynamodbav:"appointmentId"`
	PartyA        string `dynamodbav:"partyA"`
	PartyB        string `dynamodbav:"partyB"`
	Date          string `dynamodbav:"date"`
	StartTime     string `dynamodbav:"startTime"`
	EndTime       string `dynamodbav:"endTime"`
	Status        string `dynamodbav:"status"`
	CreatedAt     string `dynamodbav:"createdAt"`
}

const appointmentPrefix = "APPT#"

func appointmentSortKey(a *models.Appointment) string {
	return appointmentPrefix + a.Date + "#" + a.StartTime + "#" + a.AppointmentID
}

func (i appointmentItem) appointment() models.Appointment {
	return models.Appointment{
		AppointmentID: i.AppointmentID,
		PartyA:        i.PartyA,
		PartyB:        i.PartyB,
		Date:          i.Date,
		StartTime:     i.StartTime,
		EndTime:       i.EndTime,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
	}
}

// DynamoStore implements Store on DynamoDB. Pair transitions and appointment
// confirmation are single TransactWriteItems calls whose conditions encode the
// snapshot the caller decided on.
type DynamoStore struct {
	Dynamo *DynamoService
}

func (s *DynamoStore) GetParty(ctx context.Context, partyID string) (*models.Party, error) {
	var party models.Party
	err := s.Dynamo.GetItem(ctx, s.Dynamo.Table(models.PartiesTable), utils.Key("partyId", partyID), &party)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

// GetParties reads the parties in batches and returns them in the order of
// partyIDs. Unknown ids are skipped.
func (s *DynamoStore) GetParties(ctx context.Context, partyIDs []string) ([]models.Party, error) {
	keys := make([]map[string]types.AttributeValue, 0, len(partyIDs))
	seen := make(map[string]bool, len(partyIDs))
	for _, id := range partyIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, utils.Key("partyId", id))
	}

	items, err := s.Dynamo.BatchGetAll(ctx, s.Dynamo.Table(models.PartiesTable), keys)
	if err != nil {
		return nil, err
	}
	var found []models.Party
	if err := attributevalue.UnmarshalListOfMaps(items, &found); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parties: %w", err)
	}
	byID := make(map[string]models.Party, len(found))
	for _, p := range found {
		byID[p.PartyID] = p
	}

	parties := make([]models.Party, 0, len(partyIDs))
	for _, id := range partyIDs {
		p, ok := byID[id]
		if !ok {
			log.Warn("Skipping missing party", "partyId", id)
			continue
		}
		parties = append(parties, p)
	}
	return parties, nil
}

func (s *DynamoStore) ListParties(ctx context.Context) ([]models.Party, error) {
	items, err := s.Dynamo.ScanAll(ctx, s.Dynamo.Table(models.PartiesTable))
	if err != nil {
		return nil, err
	}
	var parties []models.Party
	if err := attributevalue.UnmarshalListOfMaps(items, &parties); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parties: %w", err)
	}
	sort.Slice(parties, func(i, j int) bool { return parties[i].PartyID < parties[j].PartyID })
	return parties, nil
}

func (s *DynamoStore) SaveProfile(ctx context.Context, partyID string, fields models.ProfileFields, createdAt string) error {
	updateExpression := "SET #name = :name, #age = :age, #gender = :gender, #bio = :bio, #avatar = :avatar, " +
		"#createdAt = if_not_exists(#createdAt, :createdAt), "
	values := map[string]types.AttributeValue{
		":name":      utils.StringValue(fields.Name),
		":age":       &types.AttributeValueMemberN{Value: fmt.Sprint(fields.Age)},
		":gender":    utils.StringValue(fields.Gender),
		":bio":       utils.StringValue(fields.Bio),
		":avatar":    utils.StringValue(fields.Avatar),
		":createdAt": utils.StringValue(createdAt),
	}
	if fields.IsActive != nil {
		updateExpression += "#active = :active"
		values[":active"] = &types.AttributeValueMemberBOOL{Value: *fields.IsActive}
	} else {
		updateExpression += "#active = if_not_exists(#active, :active)"
		values[":active"] = &types.AttributeValueMemberBOOL{Value: true}
	}
	names := map[string]string{
		"#name":      "name",
		"#age":       "age",
		"#gender":    "gender",
		"#bio":       "bio",
		"#avatar":    "avatar",
		"#createdAt": "createdAt",
		"#active":    "isActive",
	}
	return s.Dynamo.UpdateItem(ctx, s.Dynamo.Table(models.PartiesTable), utils.Key("partyId", partyID), updateExpression, values, names)
}

func (s *DynamoStore) ApplyLike(ctx context.Context, actorID, targetID string, mutual bool) error {
	table := aws.String(s.Dynamo.Table(models.PartiesTable))

	actorUpdate := "ADD #likes :target"
	actorCondition := "attribute_exists(#pk) AND NOT contains(#likes, :targetId) AND "
	actorNames := map[string]string{"#pk": "partyId", "#likes": "likes", "#likedBy": "likedBy"}
	targetUpdate := "ADD #likedBy :actor"
	targetNames := map[string]string{"#pk": "partyId", "#likedBy": "likedBy", "#active": "isActive"}
	if mutual {
		actorUpdate += ", #matches :target"
		actorCondition += "contains(#likedBy, :targetId)"
		actorNames["#matches"] = "matches"
		targetUpdate += ", #matches :actor"
		targetNames["#matches"] = "matches"
	} else {
		actorCondition += "NOT contains(#likedBy, :targetId)"
	}

	return s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:                table,
			Key:                      utils.Key("partyId", actorID),
			UpdateExpression:         aws.String(actorUpdate),
			ConditionExpression:      aws.String(actorCondition),
			ExpressionAttributeNames: actorNames,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":target":   utils.StringSetValue(targetID),
				":targetId": utils.StringValue(targetID),
			},
		}},
		{Update: &types.Update{
			TableName:                table,
			Key:                      utils.Key("partyId", targetID),
			UpdateExpression:         aws.String(targetUpdate),
			ConditionExpression:      aws.String("attribute_exists(#pk) AND #active = :true"),
			ExpressionAttributeNames: targetNames,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":actor": utils.StringSetValue(actorID),
				":true":  &types.AttributeValueMemberBOOL{Value: true},
			},
		}},
	})
}

func (s *DynamoStore) ApplyUnlike(ctx context.Context, actorID, targetID string, matched bool) error {
	table := aws.String(s.Dynamo.Table(models.PartiesTable))

	actorCondition := "contains(#likes, :targetId) AND "
	if matched {
		actorCondition += "contains(#matches, :targetId)"
	} else {
		actorCondition += "NOT contains(#matches, :targetId)"
	}

	return s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:                table,
			Key:                      utils.Key("partyId", actorID),
			UpdateExpression:         aws.String("DELETE #likes :target, #matches :target"),
			ConditionExpression:      aws.String(actorCondition),
			ExpressionAttributeNames: map[string]string{"#likes": "likes", "#matches": "matches"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":target":   utils.StringSetValue(targetID),
				":targetId": utils.StringValue(targetID),
			},
		}},
		{Update: &types.Update{
			TableName:                table,
			Key:                      utils.Key("partyId", targetID),
			UpdateExpression:         aws.String("DELETE #likedBy :actor, #matches :actor"),
			ConditionExpression:      aws.String("attribute_exists(#pk)"),
			ExpressionAttributeNames: map[string]string{"#pk": "partyId", "#likedBy": "likedBy", "#matches": "matches"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":actor": utils.StringSetValue(actorID),
			},
		}},
	})
}

func (s *DynamoStore) PutNotification(ctx context.Context, n *models.Notification) error {
	n.SortKey = n.CreatedAt + "#" + n.NotificationID
	return s.Dynamo.PutItem(ctx, s.Dynamo.Table(models.NotificationsTable), n)
}

func (s *DynamoStore) ListNotifications(ctx context.Context, receiverID string, limit int) ([]models.Notification, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx,
		s.Dynamo.Table(models.NotificationsTable),
		"#receiver = :receiver",
		map[string]types.AttributeValue{":receiver": utils.StringValue(receiverID)},
		map[string]string{"#receiver": "receiverId"},
		int32(limit),
		true,
	)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}
	return notifications, nil
}

func (s *DynamoStore) PutAvailability(ctx context.Context, a *models.Availability) error {
	return s.Dynamo.PutItem(ctx, s.Dynamo.Table(models.AvailabilityTable), a)
}

func (s *DynamoStore) GetAvailability(ctx context.Context, submitterID, counterpartID string) (*models.Availability, error) {
	var availability models.Availability
	key := utils.Key("submitterId", submitterID, "counterpartId", counterpartID)
	err := s.Dynamo.GetItem(ctx, s.Dynamo.Table(models.AvailabilityTable), key, &availability)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &availability, nil
}

func (s *DynamoStore) ConfirmAppointment(ctx context.Context, appt *models.Appointment) error {
	appointmentsTable := aws.String(s.Dynamo.Table(models.AppointmentsTable))
	availabilityTable := aws.String(s.Dynamo.Table(models.AvailabilityTable))

	var writes []types.TransactWriteItem
	for _, owner := range []string{appt.PartyA, appt.PartyB} {
		item, err := attributevalue.MarshalMap(appointmentItem{
			PartyID:       owner,
			SK:            appointmentSortKey(appt),
			AppointmentID: appt.AppointmentID,
			PartyA:        appt.PartyA,
			PartyB:        appt.PartyB,
			Date:          appt.Date,
			StartTime:     appt.StartTime,
			EndTime:       appt.EndTime,
			Status:        appt.Status,
			CreatedAt:     appt.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal appointment: %w", err)
		}
		writes = append(writes, types.TransactWriteItem{Put: &types.Put{
			TableName: appointmentsTable,
			Item:      item,
		}})
	}
	for _, pair := range [][2]string{{appt.PartyA, appt.PartyB}, {appt.PartyB, appt.PartyA}} {
		writes = append(writes, types.TransactWriteItem{Delete: &types.Delete{
			TableName:                availabilityTable,
			Key:                      utils.Key("submitterId", pair[0], "counterpartId", pair[1]),
			ConditionExpression:      aws.String("attribute_exists(#submitter)"),
			ExpressionAttributeNames: map[string]string{"#submitter": "submitterId"},
		}})
	}
	return s.Dynamo.TransactWrite(ctx, writes)
}

func (s *DynamoStore) ListAppointments(ctx context.Context, partyID string) ([]models.Appointment, error) {
	return s.queryAppointments(ctx, partyID, appointmentPrefix)
}

func (s *DynamoStore) ListAppointmentsOnDate(ctx context.Context, partyID, date string) ([]models.Appointment, error) {
	return s.queryAppointments(ctx, partyID, appointmentPrefix+date+"#")
}

func (s *DynamoStore) queryAppointments(ctx context.Context, partyID, prefix string) ([]models.Appointment, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx,
		s.Dynamo.Table(models.AppointmentsTable),
		"#pk = :party AND begins_with(#sk, :prefix)",
		map[string]types.AttributeValue{
			":party":  utils.StringValue(partyID),
			":prefix": utils.StringValue(prefix),
		},
		map[string]string{"#pk": "partyId", "#sk": "SK"},
		0,
		false,
	)
	if err != nil {
		return nil, err
	}
	var indexed []appointmentItem
	if err := attributevalue.UnmarshalListOfMaps(items, &indexed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal appointments: %w", err)
	}
	appointments := make([]models.Appointment, 0, len(indexed))
	for _, item := range indexed {
		appointments = append(appointments, item.appointment())
	}
	return appointments, nil
}
