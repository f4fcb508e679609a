package main

import (
	"context"
	"errors"
	"huddlebot/internal/adapters/dictionary"
	"huddlebot/internal/adapters/handler"
	"huddlebot/internal/adapters/ryver"
	"huddlebot/internal/adapters/store"
	"huddlebot/internal/adapters/topic"
	"huddlebot/internal/adapters/translate"
	"huddlebot/internal/core/domain/command"
	"huddlebot/internal/core/port"
	"huddlebot/internal/core/service"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting huddlebot...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using ambient environment")
	}

	viper.SetConfigName("huddlebot")
	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	setConfigDefaults()

	log.Info().Msg("reading config file...")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "trace":
		logLevel = zerolog.TraceLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chatID, err := strconv.Atoi(os.Getenv("RYVER_CHAT"))
	if err != nil {
		log.Fatal().Err(err).Msg("RYVER_CHAT must be the numeric bot chat ID")
	}

	client := ryver.NewClient(os.Getenv("RYVER_ORG"), os.Getenv("RYVER_USER"), os.Getenv("RYVER_PASS"))

	if err = client.Login(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to log into Ryver")
	}

	if err = client.LoadChats(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load org chats")
	}

	chat, err := client.Chat(chatID,
		viper.GetString("bot.name"),
		viper.GetString("bot.avatar"))
	if err != nil {
		log.Fatal().Err(err).Msg("bot chat not found")
	}

	board, err := client.TaskBoard(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve bot task board")
	}

	location, err := time.LoadLocation(timezone(client))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bot timezone")
	}

	contentStore, err := store.NewSQLite(viper.GetString("store.path"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open content store")
	}
	defer contentStore.Close()

	topics, err := topic.NewFileSource(viper.GetString("topics.path"),
		rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // topic shuffle
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load topics")
	}

	auth := service.NewAdminList(strings.Split(os.Getenv("BOT_ADMINS"), ","))
	scheduler := service.NewReminderScheduler(board)
	closer := service.NewPollCloser(chat, client.BotUser().ID)

	registry := &command.Registry{}
	registerCommands(registry, chat, scheduler, topics, contentStore, location, stop)

	chatHandler := handler.NewChat(registry, auth, chat, chat.JID(),
		viper.GetDuration("bot.handler_timeout"))
	notifications := handler.NewNotification(board, client, closer)

	// pending poll reminders from before the last shutdown fire now, before
	// any live event is read
	if err = notifications.Replay(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to replay unread notifications")
	}

	session, err := client.Dial(ctx, chatHandler, notifications)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open live session")
	}
	defer session.Close()

	log.Info().Msg("bot listening")

	if err = session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("live session failed")
	}

	log.Info().Msg("huddlebot stopped")
}

func registerCommands(registry *command.Registry, chat *ryver.Chat, scheduler service.Scheduler,
	topics port.TopicSource, contentStore *store.SQLite, location *time.Location, stop func()) {
	dict := dictionary.NewAPI(dictionary.DefaultEndpoint)
	translator := translate.NewGoogle(translate.DefaultEndpoint)

	topicGate := service.NewCooldown(cooldown("topic"))
	triviaGate := service.NewCooldown(cooldown("trivia"))
	defineGate := service.NewCooldown(cooldown("define"))
	synonymsGate := service.NewCooldown(cooldown("synonyms"))

	round := &command.TriviaRound{}
	cahSession := &command.CahSession{}

	registry.Register(port.Registration{
		Handler: command.NewTopic(topics, chat, "!topic"),
		Gate:    topicGate,
	})
	registry.Register(port.Registration{
		Handler:   command.NewTopic(topics, chat, "!topic bypass"),
		AdminOnly: true,
		Gate:      topicGate,
		Bypass:    true,
	})

	registry.Register(port.Registration{
		Handler: command.NewPoll(command.PollParams{
			Messenger: chat,
			Scheduler: scheduler,
			Symbols:   viper.GetStringSlice("poll.reactions"),
			Location:  location,
			Prefix:    "!poll",
		}),
		Gate:    service.NewCooldown(cooldown("poll")),
		PerUser: true,
	})

	registry.Register(port.Registration{
		Handler: command.NewTrivia(contentStore, round, chat, "!trivia"),
		Gate:    triviaGate,
		PerUser: true,
	})
	registry.Register(port.Registration{
		Handler:   command.NewTrivia(contentStore, round, chat, "!trivia bypass"),
		AdminOnly: true,
		Gate:      triviaGate,
		Bypass:    true,
	})
	registry.Register(port.Registration{Handler: command.NewResponse(round, chat, "!response")})
	registry.Register(port.Registration{Handler: command.NewAnswer(round, chat, "!answer")})

	registry.Register(port.Registration{
		Handler: command.NewDefine(dict, chat, "!define"),
		Gate:    defineGate,
		PerUser: true,
	})
	registry.Register(port.Registration{
		Handler:   command.NewDefine(dict, chat, "!define bypass"),
		AdminOnly: true,
		Gate:      defineGate,
		Bypass:    true,
	})
	registry.Register(port.Registration{
		Handler: command.NewSynonyms(dict, chat, "!synonyms"),
		Gate:    synonymsGate,
		PerUser: true,
	})
	registry.Register(port.Registration{
		Handler:   command.NewSynonyms(dict, chat, "!synonyms bypass"),
		AdminOnly: true,
		Gate:      synonymsGate,
		Bypass:    true,
	})

	registry.Register(port.Registration{
		Handler: command.NewRepeat(chat, "!repeat"),
		Gate:    service.NewCooldown(cooldown("repeat")),
		PerUser: true,
	})
	registry.Register(port.Registration{
		Handler: command.NewPhon(chat, "!phon"),
		Gate:    service.NewCooldown(cooldown("phon")),
		PerUser: true,
	})
	registry.Register(port.Registration{
		Handler: command.NewTellMeTo(chat, "someone tell me to "),
		Gate:    service.NewCooldown(cooldown("tell_me_to")),
		PerUser: true,
	})

	registry.Register(port.Registration{Handler: command.NewEvaluate(chat, "!evaluate")})
	registry.Register(port.Registration{Handler: command.NewTranslate(translator, chat, "!translate")})
	registry.Register(port.Registration{Handler: command.NewLatex(chat, "!latex")})
	registry.Register(port.Registration{Handler: command.NewEmoticon(chat, "!emoticon")})
	registry.Register(port.Registration{Handler: command.NewIntro(chat, "!intro")})
	registry.Register(port.Registration{Handler: command.NewCommands(registry, chat, "!commands")})
	registry.Register(port.Registration{
		Handler: command.NewVersion(chat, viper.GetString("bot.version"), "!version"),
	})

	registry.Register(port.Registration{Handler: command.NewCah(contentStore, cahSession, chat, "!cah")})
	registry.Register(port.Registration{Handler: command.NewJoin(cahSession, chat, "!join")})
	registry.Register(port.Registration{Handler: command.NewStart(cahSession, chat, "!start")})
	registry.Register(port.Registration{Handler: command.NewCard(cahSession, chat, "!card")})
	registry.Register(port.Registration{Handler: command.NewPick(cahSession, chat, "!pick")})
	registry.Register(port.Registration{Handler: command.NewScores(cahSession, chat, "!scores")})
	registry.Register(port.Registration{Handler: command.NewEnd(cahSession, chat, "!end")})

	registry.Register(port.Registration{Handler: command.NewPull(chat, ".", "!pull"), AdminOnly: true})
	registry.Register(port.Registration{Handler: command.NewRestart(stop, "!restart"), AdminOnly: true})
	registry.Register(port.Registration{Handler: command.NewShutdown(stop, "!shutdown"), AdminOnly: true})
}

// cooldown reads a per-command cooldown in seconds from the config.
func cooldown(name string) time.Duration {
	return time.Duration(viper.GetInt("cooldowns."+name)) * time.Second
}

func setConfigDefaults() {
	viper.SetDefault("bot.name", "HuddleBot")
	viper.SetDefault("bot.version", "dev")
	viper.SetDefault("bot.handler_timeout", "60s")
	viper.SetDefault("store.path", "huddlebot.db")
	viper.SetDefault("topics.path", "topics.txt")
	viper.SetDefault("poll.reactions", strings.Split(
		"zero;one;two;three;four;five;six;seven;eight;nine;keycap_ten", ";"))
	viper.SetDefault("cooldowns.topic", 100)
	viper.SetDefault("cooldowns.poll", 100)
	viper.SetDefault("cooldowns.repeat", 45)
	viper.SetDefault("cooldowns.phon", 45)
	viper.SetDefault("cooldowns.tell_me_to", 200)
	viper.SetDefault("cooldowns.trivia", 60)
	viper.SetDefault("cooldowns.define", 30)
	viper.SetDefault("cooldowns.synonyms", 30)
}

// timezone prefers the configured zone, falling back to the bot account's
// own Ryver time zone.
func timezone(client *ryver.Client) string {
	if zone := viper.GetString("bot.timezone"); zone != "" {
		return zone
	}

	return client.BotTimeZone()
}
