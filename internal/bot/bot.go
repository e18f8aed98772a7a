package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/preplab/internal/ai"
	"github.com/example/preplab/internal/database"
	"github.com/example/preplab/internal/planner"
	"github.com/example/preplab/internal/progress"
)

// UserState represents where a user is in a multi-step conversation
type UserState struct {
	State     string // e.g. stateAwaitingQuery
	Data      string // State payload (question slug, etc.)
	Timestamp time.Time
}

// Conversation states
const (
	stateAwaitingQuery = "awaiting_sql_query"
)

// Bot represents the Telegram bot application
type Bot struct {
	api          *tgbotapi.BotAPI
	userRepo     *database.UserRepository
	tagRepo      *database.TagRepository
	taskRepo     *database.TaskRepository
	appRepo      *database.ApplicationRepository
	questionRepo *database.QuestionRepository
	planner      *planner.Planner
	progress     *progress.Aggregator
	chatGPT      *ai.Client
	aiEnabled    bool
	userStates   map[int64]UserState
	config       *Config
}

// New creates a new bot instance
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	aiEnabled := os.Getenv("OPENAI_API_KEY") != ""
	var chatGPT *ai.Client
	if aiEnabled {
		chatGPT, err = ai.New()
		if err != nil {
			log.Printf("Warning: unable to initialize AI client: %v", err)
			aiEnabled = false
		}
	}

	tagRepo := database.NewTagRepository()
	taskRepo := database.NewTaskRepository()

	return &Bot{
		api:          api,
		userRepo:     database.NewUserRepository(),
		tagRepo:      tagRepo,
		taskRepo:     taskRepo,
		appRepo:      database.NewApplicationRepository(),
		questionRepo: database.NewQuestionRepository(),
		planner:      planner.New(tagRepo, taskRepo),
		progress:     progress.New(taskRepo),
		chatGPT:      chatGPT,
		aiEnabled:    aiEnabled,
		userStates:   make(map[int64]UserState),
		config:       DefaultConfig(),
	}, nil
}

// Start begins polling for updates until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// Stop shuts down the update polling
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

// SendPlanReminder implements scheduler.Notifier
func (b *Bot) SendPlanReminder(telegramID int64, pending int) error {
	text := fmt.Sprintf("You still have %d planned session(s) today. Open /today to finish them.", pending)
	msg := tgbotapi.NewMessage(telegramID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

// handleUpdate dispatches a single update
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}

	message := update.Message
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}
	b.handleText(ctx, message)
}

// handleCommand routes bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	// Any command cancels an in-flight conversation
	delete(b.userStates, message.From.ID)

	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	case "plan":
		b.handlePlan(ctx, message)
	case "today":
		b.handleToday(ctx, message)
	case "add":
		b.handleAdd(ctx, message)
	case "progress":
		b.handleProgress(ctx, message)
	case "tags":
		b.handleTags(ctx, message)
	case "newtag":
		b.handleNewTag(ctx, message)
	case "deltag":
		b.handleDeleteTag(ctx, message)
	case "apps":
		b.handleApplications(ctx, message)
	case "newapp":
		b.handleNewApplication(ctx, message)
	case "export":
		b.handleExport(ctx, message)
	case "sql":
		b.handleSQLPractice(ctx, message)
	case "remind":
		b.handleRemind(ctx, message)
	case "help":
		b.reply(message.Chat.ID, helpText)
	default:
		b.reply(message.Chat.ID, "Unknown command. See /help.")
	}
}

const helpText = `Commands:
/plan - suggested practice for today
/today - today's sessions, mark them done
/add <minutes> <tag-slug> <title> - schedule a session
/progress - totals, weekly volume and streak
/tags - your tags
/newtag <name> - create a tag
/deltag <slug> - delete a tag
/apps - job applications
/newapp <company> | <role> - track an application
/export - download applications as XLSX
/sql - SQL practice questions
/remind <hour> - daily reminder hour (0-23)`

// reply sends a plain text message
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// replyWithKeyboard sends a message with an inline keyboard
func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
